package model

type AccessToken struct {
	ID string `json:"id"`
}

type ShortUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	DisplayName  string `json:"display_name"`
	Bio          string `json:"bio"`
	Karma        int64  `json:"karma"`
	IsAdmin      bool   `json:"is_admin"`
	IsBanned     bool   `json:"is_banned"`
	BanReason    string `json:"ban_reason,omitempty"`
	BanExpiresAt string `json:"ban_expires_at,omitempty"`
	LastActiveAt string `json:"last_active_at,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type Subreddit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
	Theme       string `json:"theme"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

type Moderator struct {
	SubredditID string    `json:"subreddit_id"`
	User        ShortUser `json:"user"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   string    `json:"created_at"`
}

type Subscriber struct {
	User         ShortUser `json:"user"`
	SubscribedAt string    `json:"subscribed_at"`
}

type Media struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// FailedMedia reports a media item which was not attached to its post.
type FailedMedia struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       ShortUser `json:"author"`
	SubredditID  string    `json:"subreddit_id"`
	Media        []Media   `json:"media"`
	VoteCount    int64     `json:"vote_count"`
	UserVote     int       `json:"user_vote"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    ShortUser `json:"author"`
	PostID    string    `json:"post_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	VoteCount int64     `json:"vote_count"`
	UserVote  int       `json:"user_vote"`
	Replies   []Comment `json:"replies,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

type Vote struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Value      int    `json:"value"`
}

type Notification struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	SourceID   string `json:"source_id"`
	SourceType string `json:"source_type"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

type PrivateMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	ReplyToID  string `json:"reply_to_id,omitempty"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

type Conversation struct {
	User          ShortUser      `json:"user"`
	LatestMessage PrivateMessage `json:"latest_message"`
	UnreadCount   int            `json:"unread_count"`
}

type KarmaRecord struct {
	Rank  int       `json:"rank"`
	User  ShortUser `json:"user"`
	Karma int64     `json:"karma"`
}
