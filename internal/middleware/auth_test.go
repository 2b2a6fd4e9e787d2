package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/testutil"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

func newToken(t *testing.T, ctx context.Context, userID string) string {
	token, err := xcontext.TokenEngine(ctx).Generate(time.Minute, model.AccessToken{ID: userID})
	require.NoError(t, err)
	return token
}

func withRequest(ctx context.Context, build func(req *http.Request)) context.Context {
	req := httptest.NewRequest(http.MethodGet, "/getMe", nil)
	if build != nil {
		build(req)
	}

	return xcontext.WithHTTPRequest(ctx, req)
}

func TestAuthVerifier_Middleware(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	verifier := NewAuthVerifier(repository.NewUserRepository())
	cookieName := xcontext.Configs(ctx).Auth.AccessToken.Name

	tests := []struct {
		name       string
		build      func(req *http.Request)
		wantUserID string
		wantCode   errorx.Code
	}{
		{
			name:     "no token",
			wantCode: errorx.Unauthenticated,
		},
		{
			name: "bearer token",
			build: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+newToken(t, ctx, testutil.User1.ID))
			},
			wantUserID: testutil.User1.ID,
		},
		{
			name: "cookie token",
			build: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: newToken(t, ctx, testutil.User2.ID)})
			},
			wantUserID: testutil.User2.ID,
		},
		{
			name: "query token",
			build: func(req *http.Request) {
				req.URL.RawQuery = "token=" + newToken(t, ctx, testutil.User3.ID)
			},
			wantUserID: testutil.User3.ID,
		},
		{
			name: "garbage token",
			build: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer garbage")
			},
			wantCode: errorx.Unauthenticated,
		},
		{
			name: "unknown user",
			build: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+newToken(t, ctx, "ghost"))
			},
			wantCode: errorx.Unauthenticated,
		},
		{
			name: "banned user",
			build: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+newToken(t, ctx, testutil.BannedUser.ID))
			},
			wantCode: errorx.Banned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newCtx, err := verifier.Middleware()(withRequest(ctx, tt.build))
			if tt.wantCode != 0 {
				require.Error(t, err)
				errx, ok := err.(errorx.Error)
				require.True(t, ok)
				require.Equal(t, tt.wantCode, errx.Code)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantUserID, xcontext.RequestUserID(newCtx))
		})
	}
}

func TestAuthVerifier_BannedDetail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	verifier := NewAuthVerifier(repository.NewUserRepository())

	ctx = withRequest(ctx, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+newToken(t, ctx, testutil.BannedUser.ID))
	})

	_, err := verifier.Middleware()(ctx)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.Banned, errx.Code)

	detail, ok := errx.Detail.(common.BanDetail)
	require.True(t, ok)
	require.Equal(t, "spam", detail.Reason)
	require.NotEmpty(t, detail.ExpiresAt)
}

func TestAuthVerifier_ExpiredBanIsLifted(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	userRepo := repository.NewUserRepository()
	verifier := NewAuthVerifier(userRepo)

	reqCtx := withRequest(ctx, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+newToken(t, ctx, testutil.ExpiredBanUser.ID))
	})

	newCtx, err := verifier.Middleware()(reqCtx)
	require.NoError(t, err)
	require.Equal(t, testutil.ExpiredBanUser.ID, xcontext.RequestUserID(newCtx))

	var user entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&user, "id=?", testutil.ExpiredBanUser.ID).Error)
	require.False(t, user.IsBanned)
	require.Empty(t, user.BanReason)
	require.False(t, user.BanExpiresAt.Valid)
}

func TestAuthVerifier_OptionalMiddleware(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	verifier := NewAuthVerifier(repository.NewUserRepository())

	newCtx, err := verifier.OptionalMiddleware()(withRequest(ctx, nil))
	require.NoError(t, err)
	require.Nil(t, newCtx)

	newCtx, err = verifier.OptionalMiddleware()(withRequest(ctx, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+newToken(t, ctx, testutil.User4.ID))
	}))
	require.NoError(t, err)
	require.Equal(t, testutil.User4.ID, xcontext.RequestUserID(newCtx))
}

func TestHandleSetCookie(t *testing.T) {
	ctx := testutil.MockContext()
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithResponse(ctx, &model.LoginResponse{AccessToken: "abc"})

	_, err := HandleSetCookie()(ctx)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, xcontext.Configs(ctx).Auth.AccessToken.Name, cookies[0].Name)
	require.Equal(t, "abc", cookies[0].Value)
}
