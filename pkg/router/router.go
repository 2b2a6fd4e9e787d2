package router

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/threadhub-lab/backend/config"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/ws"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type WebsocketHandlerFunc[Request any] func(ctx context.Context, req *Request) error

// MiddlewareFunc runs before or after a handler. The returned context replaces
// the request context for the following middlewares and the handler.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, whether or not the request
// failed.
type CloserFunc func(ctx context.Context)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Router struct {
	ctx context.Context
	mux *http.ServeMux

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers inherit the values of ctx (configs,
// logger, database, token engine...).
func New(ctx context.Context) *Router {
	return &Router{ctx: ctx, mux: http.NewServeMux()}
}

// Branch returns a router sharing the same mux but with its own copy of the
// middleware chain.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m ...MiddlewareFunc) {
	r.befores = append(r.befores, m...)
}

func (r *Router) After(m ...MiddlewareFunc) {
	r.afters = append(r.afters, m...)
}

func (r *Router) AddCloser(c ...CloserFunc) {
	r.closers = append(r.closers, c...)
}

func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores, afters, closers := r.befores, r.afters, r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := r.newContext(w, httpReq)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		ctx = func(ctx context.Context) context.Context {
			if httpReq.Method != method {
				return xcontext.WithError(ctx, errorx.New(errorx.NotFound, "Not found"))
			}

			var err error
			for _, m := range befores {
				if ctx, err = runMiddleware(ctx, m); err != nil {
					return xcontext.WithError(ctx, err)
				}
			}

			var req Request
			if err := bind(httpReq, &req); err != nil {
				return xcontext.WithError(ctx, err)
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			ctx = xcontext.WithResponse(ctx, resp)
			for _, m := range afters {
				if ctx, err = runMiddleware(ctx, m); err != nil {
					return xcontext.WithError(ctx, err)
				}
			}

			return ctx
		}(ctx)

		writeResponse(ctx)
	})
}

// Websocket registers a GET endpoint which upgrades the connection and hands
// a ws.Client to the handler through the context. Before middlewares run
// prior to the upgrade, so they can still reject the request over HTTP.
func Websocket[Request any](r *Router, pattern string, handler WebsocketHandlerFunc[Request]) {
	befores, closers := r.befores, r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := r.newContext(w, httpReq)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var err error
		for _, m := range befores {
			if ctx, err = runMiddleware(ctx, m); err != nil {
				ctx = xcontext.WithError(ctx, err)
				writeResponse(ctx)
				return
			}
		}

		var req Request
		if err := bind(httpReq, &req); err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeResponse(ctx)
			return
		}

		conn, err := upgrader.Upgrade(w, httpReq, nil)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot upgrade websocket: %v", err)
			return
		}

		client := ws.NewClient(conn)
		defer client.Close()

		ctx = xcontext.WithWSClient(ctx, client)
		if err := handler(ctx, &req); err != nil {
			ctx = xcontext.WithError(ctx, err)
		}
	})
}

func (r *Router) newContext(w http.ResponseWriter, req *http.Request) context.Context {
	ctx := xcontext.WithHTTPRequest(r.ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx
}

func runMiddleware(ctx context.Context, m MiddlewareFunc) (context.Context, error) {
	newCtx, err := m(ctx)
	if newCtx == nil {
		newCtx = ctx
	}

	return newCtx, err
}
