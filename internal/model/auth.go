package model

import (
	"context"
	"net/http"
	"time"

	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type RegisterRequest struct {
	Username    string `json:"username" validate:"max=64"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

type RegisterResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetMeRequest struct{}

type GetMeResponse struct {
	User                User        `json:"user"`
	PostCount           int64       `json:"post_count"`
	CommentCount        int64       `json:"comment_count"`
	FollowerCount       int64       `json:"follower_count"`
	FollowingCount      int64       `json:"following_count"`
	CreatedSubreddits   []Subreddit `json:"created_subreddits"`
	ModeratedSubreddits []Subreddit `json:"moderated_subreddits"`
}

type GetSocketTokenRequest struct{}

type GetSocketTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type HealthzRequest struct{}

type HealthzResponse struct {
	Status string `json:"status"`
}

func accessTokenCookie(ctx context.Context, value string, expires time.Time) http.Cookie {
	return http.Cookie{
		Name:     xcontext.Configs(ctx).Auth.AccessToken.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (r RegisterResponse) CookieInfo(ctx context.Context) []http.Cookie {
	expiration := xcontext.Configs(ctx).Auth.AccessToken.Expiration
	return []http.Cookie{accessTokenCookie(ctx, r.AccessToken, time.Now().Add(expiration))}
}

func (r LoginResponse) CookieInfo(ctx context.Context) []http.Cookie {
	expiration := xcontext.Configs(ctx).Auth.AccessToken.Expiration
	return []http.Cookie{accessTokenCookie(ctx, r.AccessToken, time.Now().Add(expiration))}
}

func (r LogoutResponse) CookieInfo(ctx context.Context) []http.Cookie {
	cookie := accessTokenCookie(ctx, "", time.Unix(0, 0))
	cookie.MaxAge = -1
	return []http.Cookie{cookie}
}
