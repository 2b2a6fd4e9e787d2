package middleware

import (
	"context"
	"net/http"

	"github.com/threadhub-lab/backend/pkg/router"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type CookieResponse interface {
	CookieInfo(context.Context) []http.Cookie
}

func HandleSetCookie() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		resp, ok := xcontext.Response(ctx).(CookieResponse)
		if ok {
			for _, cookie := range resp.CookieInfo(ctx) {
				cookie := cookie
				http.SetCookie(xcontext.HTTPWriter(ctx), &cookie)
			}
		}

		return nil, nil
	}
}
