package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/threadhub-lab/backend/internal/common"
	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/model"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetSocketToken(context.Context, *model.GetSocketTokenRequest) (*model.GetSocketTokenResponse, error)
	Healthz(context.Context, *model.HealthzRequest) (*model.HealthzResponse, error)
}

type authDomain struct {
	userRepo      repository.UserRepository
	postRepo      repository.PostRepository
	commentRepo   repository.CommentRepository
	followRepo    repository.FollowRepository
	subredditRepo repository.SubredditRepository
	moderatorRepo repository.ModeratorRepository
	passwordCost  int
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	subredditRepo repository.SubredditRepository,
	moderatorRepo repository.ModeratorRepository,
) *authDomain {
	return &authDomain{
		userRepo:      userRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		followRepo:    followRepo,
		subredditRepo: subredditRepo,
		moderatorRepo: moderatorRepo,
		passwordCost:  bcrypt.DefaultCost,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Username, email and password are required")
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least %d characters", minPasswordLength)
	}

	if _, err := d.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), d.passwordCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user := &entity.User{
		Base:        entity.Base{ID: uuid.NewString()},
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		DisplayName: displayName,
		Bio:         req.Bio,
	}
	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	token, err := d.generateToken(ctx, user.ID, xcontext.Configs(ctx).Auth.AccessToken.Expiration)
	if err != nil {
		return nil, err
	}

	return &model.RegisterResponse{User: model.ConvertUser(user, true), AccessToken: token}, nil
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Email and password are required")
	}

	user, err := d.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if err := common.CheckGlobalBan(ctx, d.userRepo, user); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := d.userRepo.UpdateLastActive(ctx, user.ID, now); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update last active of user %s: %v", user.ID, err)
	}
	user.LastActiveAt.Valid = true
	user.LastActiveAt.Time = now

	token, err := d.generateToken(ctx, user.ID, xcontext.Configs(ctx).Auth.AccessToken.Expiration)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{User: model.ConvertUser(user, true), AccessToken: token}, nil
}

func (d *authDomain) Logout(ctx context.Context, req *model.LogoutRequest) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{}, nil
}

func (d *authDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, err := getUser(ctx, d.userRepo, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	resp := &model.GetMeResponse{User: model.ConvertUser(user, true)}
	counters := []struct {
		name  string
		count func(context.Context, string) (int64, error)
		dst   *int64
	}{
		{"posts", d.postRepo.CountByAuthorID, &resp.PostCount},
		{"comments", d.commentRepo.CountByAuthorID, &resp.CommentCount},
		{"followers", d.followRepo.CountFollowers, &resp.FollowerCount},
		{"following", d.followRepo.CountFollowing, &resp.FollowingCount},
	}

	for _, c := range counters {
		n, err := c.count(ctx, user.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count %s: %v", c.name, err)
			return nil, errorx.Unknown
		}

		*c.dst = n
	}

	created, err := d.subredditRepo.GetListByCreator(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get created subreddits: %v", err)
		return nil, errorx.Unknown
	}

	resp.CreatedSubreddits = []model.Subreddit{}
	for i := range created {
		resp.CreatedSubreddits = append(resp.CreatedSubreddits, model.ConvertSubreddit(&created[i]))
	}

	moderators, err := d.moderatorRepo.GetListByUserID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get moderated subreddits: %v", err)
		return nil, errorx.Unknown
	}

	subredditIDs := []string{}
	for _, m := range moderators {
		subredditIDs = append(subredditIDs, m.SubredditID)
	}

	resp.ModeratedSubreddits = []model.Subreddit{}
	if len(subredditIDs) > 0 {
		moderated, err := d.subredditRepo.GetByIDs(ctx, subredditIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get moderated subreddits: %v", err)
			return nil, errorx.Unknown
		}

		for i := range moderated {
			resp.ModeratedSubreddits = append(resp.ModeratedSubreddits, model.ConvertSubreddit(&moderated[i]))
		}
	}

	return resp, nil
}

func (d *authDomain) GetSocketToken(
	ctx context.Context, req *model.GetSocketTokenRequest,
) (*model.GetSocketTokenResponse, error) {
	expiration := xcontext.Configs(ctx).Auth.SocketToken.Expiration
	token, err := d.generateToken(ctx, xcontext.RequestUserID(ctx), expiration)
	if err != nil {
		return nil, err
	}

	return &model.GetSocketTokenResponse{Token: token, ExpiresIn: int64(expiration.Seconds())}, nil
}

func (d *authDomain) Healthz(ctx context.Context, req *model.HealthzRequest) (*model.HealthzResponse, error) {
	return &model.HealthzResponse{Status: "OK"}, nil
}

func (d *authDomain) generateToken(ctx context.Context, userID string, expiration time.Duration) (string, error) {
	token, err := xcontext.TokenEngine(ctx).Generate(expiration, model.AccessToken{ID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate token: %v", err)
		return "", errorx.Unknown
	}

	return token, nil
}
