package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/testutil"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
)

func Test_authDomain_Register(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.RegisterRequest
		wantErr error
	}{
		{
			name: "happy case",
			req:  &model.RegisterRequest{Username: "frank", Email: " Frank@ThreadHub.dev ", Password: "secret"},
		},
		{
			name:    "missing email",
			req:     &model.RegisterRequest{Username: "frank", Password: "secret"},
			wantErr: errorx.New(errorx.BadRequest, "Username, email and password are required"),
		},
		{
			name:    "short password",
			req:     &model.RegisterRequest{Username: "frank", Email: "frank@threadhub.dev", Password: "123"},
			wantErr: errorx.New(errorx.BadRequest, "Password must be at least 6 characters"),
		},
		{
			name:    "username taken",
			req:     &model.RegisterRequest{Username: "alice", Email: "frank@threadhub.dev", Password: "secret"},
			wantErr: errorx.New(errorx.AlreadyExists, "Username is already taken"),
		},
		{
			name:    "email taken",
			req:     &model.RegisterRequest{Username: "frank", Email: "ALICE@threadhub.dev", Password: "secret"},
			wantErr: errorx.New(errorx.AlreadyExists, "Email is already registered"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := fixtureContext("")
			s := newTestSuite()
			s.auth.passwordCost = bcrypt.MinCost

			resp, err := s.auth.Register(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "frank", resp.User.Username)
			require.Equal(t, "frank", resp.User.DisplayName)
			require.Equal(t, "frank@threadhub.dev", resp.User.Email)

			var token model.AccessToken
			require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &token))
			require.Equal(t, resp.User.ID, token.ID)

			login, err := s.auth.Login(ctx, &model.LoginRequest{Email: "frank@threadhub.dev", Password: "secret"})
			require.NoError(t, err)
			require.Equal(t, resp.User.ID, login.User.ID)
		})
	}
}

func Test_authDomain_Login(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.LoginRequest
		wantErr error
	}{
		{
			name: "happy case",
			req:  &model.LoginRequest{Email: testutil.User1.Email, Password: testutil.FixturePassword},
		},
		{
			name: "expired ban is lifted",
			req:  &model.LoginRequest{Email: testutil.ExpiredBanUser.Email, Password: testutil.FixturePassword},
		},
		{
			name:    "wrong password",
			req:     &model.LoginRequest{Email: testutil.User1.Email, Password: "wrong-password"},
			wantErr: errorx.New(errorx.Unauthenticated, "Invalid email or password"),
		},
		{
			name:    "unknown email",
			req:     &model.LoginRequest{Email: "nobody@threadhub.dev", Password: testutil.FixturePassword},
			wantErr: errorx.New(errorx.Unauthenticated, "Invalid email or password"),
		},
		{
			name:    "empty password",
			req:     &model.LoginRequest{Email: testutil.User1.Email},
			wantErr: errorx.New(errorx.BadRequest, "Email and password are required"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := fixtureContext("")
			s := newTestSuite()

			resp, err := s.auth.Login(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.False(t, resp.User.IsBanned)
			require.NotEmpty(t, resp.User.LastActiveAt)
			require.NotEmpty(t, resp.AccessToken)

			user, err := s.userRepo.GetByEmail(ctx, tt.req.Email)
			require.NoError(t, err)
			require.False(t, user.IsBanned)
			require.True(t, user.LastActiveAt.Valid)
		})
	}
}

func Test_authDomain_Login_Banned(t *testing.T) {
	ctx := fixtureContext("")
	s := newTestSuite()

	_, err := s.auth.Login(ctx, &model.LoginRequest{
		Email:    testutil.BannedUser.Email,
		Password: testutil.FixturePassword,
	})
	requireErrorCode(t, err, errorx.Banned)

	detail, ok := err.(errorx.Error).Detail.(common.BanDetail)
	require.True(t, ok)
	require.Equal(t, "spam", detail.Reason)
	require.NotEmpty(t, detail.ExpiresAt)
}

func Test_authDomain_GetMe(t *testing.T) {
	ctx := fixtureContext(testutil.User2.ID)
	s := newTestSuite()

	resp, err := s.auth.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Email, resp.User.Email)
	require.Zero(t, resp.PostCount)
	require.Len(t, resp.CreatedSubreddits, 1)
	require.Equal(t, testutil.Subreddit2.ID, resp.CreatedSubreddits[0].ID)
	require.Len(t, resp.ModeratedSubreddits, 2)
}

func Test_authDomain_GetSocketToken(t *testing.T) {
	ctx := fixtureContext(testutil.User1.ID)
	s := newTestSuite()

	resp, err := s.auth.GetSocketToken(ctx, &model.GetSocketTokenRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(60), resp.ExpiresIn)

	var token model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.Token, &token))
	require.Equal(t, testutil.User1.ID, token.ID)
}
