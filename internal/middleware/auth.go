package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/router"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const tokenQueryParam = "token"

type AuthVerifier struct {
	userRepo repository.UserRepository
}

func NewAuthVerifier(userRepo repository.UserRepository) *AuthVerifier {
	return &AuthVerifier{userRepo: userRepo}
}

// Middleware rejects requests without a valid access token.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return a.verify(ctx, token)
	}
}

// OptionalMiddleware lets anonymous requests through but still verifies a
// token if one is given.
func (a *AuthVerifier) OptionalMiddleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			return nil, nil
		}

		return a.verify(ctx, token)
	}
}

func (a *AuthVerifier) verify(ctx context.Context, token string) (context.Context, error) {
	var info model.AccessToken
	if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil || info.ID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired token")
	}

	user, err := a.userRepo.GetByID(ctx, info.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "User no longer exists")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := common.CheckGlobalBan(ctx, a.userRepo, user); err != nil {
		return nil, err
	}

	return xcontext.WithRequestUserID(ctx, user.ID), nil
}

// getAccessToken looks at the bearer header, then the cookie, then the query
// parameter used by websocket clients.
func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	if auth, token, found := strings.Cut(req.Header.Get("Authorization"), " "); found {
		if auth == "Bearer" {
			return token
		}

		return ""
	}

	if cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return req.URL.Query().Get(tokenQueryParam)
}
