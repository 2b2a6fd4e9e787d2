package model

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/threadhub-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(DefaultTimeLayout)
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return formatTime(t.Time)
}

func ConvertShortUser(u *entity.User) ShortUser {
	if u == nil {
		return ShortUser{}
	}

	return ShortUser{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}

// ConvertUser hides the email and the ban reason unless includeSensitive is
// set.
func ConvertUser(u *entity.User, includeSensitive bool) User {
	if u == nil {
		return User{}
	}

	result := User{
		ID:           u.ID,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		Bio:          u.Bio,
		Karma:        u.Karma,
		IsAdmin:      u.IsAdmin,
		IsBanned:     u.IsBanned,
		LastActiveAt: formatNullTime(u.LastActiveAt),
		CreatedAt:    formatTime(u.CreatedAt),
	}

	if includeSensitive {
		result.Email = u.Email
		result.BanReason = u.BanReason
		result.BanExpiresAt = formatNullTime(u.BanExpiresAt)
	}

	return result
}

func ConvertSubreddit(s *entity.Subreddit) Subreddit {
	if s == nil {
		return Subreddit{}
	}

	return Subreddit{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Rules:       s.Rules,
		Theme:       s.Theme,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   formatTime(s.CreatedAt),
	}
}

func ConvertModerator(m *entity.Moderator) Moderator {
	if m == nil {
		return Moderator{}
	}

	return Moderator{
		SubredditID: m.SubredditID,
		User:        ConvertShortUser(&m.User),
		Role:        string(m.Role),
		Permissions: m.Permissions.Strings(),
		CreatedAt:   formatTime(m.CreatedAt),
	}
}

func ConvertMedia(m *entity.Media) Media {
	return Media{ID: m.ID, Type: string(m.Type), URL: m.URL}
}

func ConvertPost(p *entity.Post, media []Media) Post {
	if p == nil {
		return Post{}
	}

	if media == nil {
		media = []Media{}
	}

	return Post{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      ConvertShortUser(&p.Author),
		SubredditID: p.SubredditID,
		Media:       media,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func ConvertComment(c *entity.Comment) Comment {
	if c == nil {
		return Comment{}
	}

	return Comment{
		ID:        c.ID,
		Content:   c.Content,
		Author:    ConvertShortUser(&c.Author),
		PostID:    c.PostID,
		ParentID:  c.ParentID.String,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func ConvertVote(v *entity.Vote) Vote {
	if v == nil {
		return Vote{}
	}

	return Vote{TargetType: string(v.TargetType), TargetID: v.TargetID, Value: v.Value}
}

func ConvertNotification(n *entity.Notification) Notification {
	if n == nil {
		return Notification{}
	}

	return Notification{
		ID:         strconv.FormatInt(n.ID, 10),
		Type:       string(n.Type),
		Content:    n.Content,
		SourceID:   n.SourceID,
		SourceType: string(n.SourceType),
		IsRead:     n.IsRead,
		CreatedAt:  formatTime(n.CreatedAt),
	}
}

func ConvertPrivateMessage(m *entity.PrivateMessage) PrivateMessage {
	if m == nil {
		return PrivateMessage{}
	}

	result := PrivateMessage{
		ID:         strconv.FormatInt(m.ID, 10),
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  formatTime(m.CreatedAt),
	}

	if m.ReplyToID.Valid {
		result.ReplyToID = strconv.FormatInt(m.ReplyToID.Int64, 10)
	}

	return result
}
