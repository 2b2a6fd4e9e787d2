package common

import (
	"context"
	"time"

	"github.com/threadhub-lab/backend/internal/entity"
	"github.com/threadhub-lab/backend/internal/repository"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type BanDetail struct {
	Reason    string `json:"reason"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CheckGlobalBan lifts a temporary ban which is already over, then rejects the
// user if it is still banned.
func CheckGlobalBan(ctx context.Context, userRepo repository.UserRepository, user *entity.User) error {
	if !user.IsBanned {
		return nil
	}

	if user.BanExpired(time.Now()) {
		if err := userRepo.Unban(ctx, user.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot lift expired ban of user %s: %v", user.ID, err)
			return errorx.Unknown
		}

		user.IsBanned = false
		user.BanReason = ""
		user.BanExpiresAt.Valid = false
		return nil
	}

	detail := BanDetail{Reason: user.BanReason}
	if user.BanExpiresAt.Valid {
		detail.ExpiresAt = user.BanExpiresAt.Time.Format(time.RFC3339Nano)
	}

	return errorx.New(errorx.Banned, "Your account is banned").WithDetail(detail)
}
