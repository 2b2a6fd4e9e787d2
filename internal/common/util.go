package common

import (
	"context"

	mathUtil "github.com/pkg/math"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

// ClampLimit applies the default limit when limit is not positive and caps it
// to the configured maximum.
func ClampLimit(ctx context.Context, limit int) int {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if cfg.MaxLimit > 0 {
		limit = mathUtil.MinInt(limit, cfg.MaxLimit)
	}

	return limit
}

// Truncate cuts s to at most n runes and appends "..." when it was cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n]) + "..."
}
