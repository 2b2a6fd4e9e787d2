package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/config"
	"github.com/threadhub-lab/backend/pkg/errorx"
	"github.com/threadhub-lab/backend/pkg/logger"
	"github.com/threadhub-lab/backend/pkg/xcontext"
)

type echoRequest struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
	User  string `json:"user,omitempty"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Name: req.Name, Limit: req.Limit, User: xcontext.RequestUserID(ctx)}, nil
}

type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func newTestRouter() *Router {
	ctx := xcontext.WithLogger(context.Background(), logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithConfigs(ctx, config.Default())
	return New(ctx)
}

func serve(t *testing.T, r *Router, method, target, body string) (int, envelope) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	r.Handler(config.ServerConfigs{}).ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestRouter_Binding(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echo)
	POST(r, "/echoPost", echo)

	testCases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   int64
		wantData   *echoResponse
	}{
		{
			name:       "query binding",
			method:     http.MethodGet,
			target:     "/echo?name=alice&limit=5",
			wantStatus: http.StatusOK,
			wantData:   &echoResponse{Name: "alice", Limit: 5},
		},
		{
			name:       "json binding",
			method:     http.MethodPost,
			target:     "/echoPost",
			body:       `{"name":"bob","limit":2}`,
			wantStatus: http.StatusOK,
			wantData:   &echoResponse{Name: "bob", Limit: 2},
		},
		{
			name:       "missing required field",
			method:     http.MethodGet,
			target:     "/echo?limit=5",
			wantStatus: http.StatusBadRequest,
			wantCode:   int64(errorx.BadRequest),
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			target:     "/echoPost",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   int64(errorx.BadRequest),
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			target:     "/echo",
			body:       `{"name":"bob"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   int64(errorx.NotFound),
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			status, env := serve(t, r, tt.method, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, status)
			require.Equal(t, tt.wantCode, env.Code)

			if tt.wantData != nil {
				var got echoResponse
				require.NoError(t, json.Unmarshal(env.Data, &got))
				require.Equal(t, *tt.wantData, got)
			} else {
				require.NotEmpty(t, env.Error)
			}
		})
	}
}

func TestRouter_Middleware(t *testing.T) {
	r := newTestRouter()

	var closed []string
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.HTTPRequest(ctx).URL.Path)
	})

	userRouter := r.Branch()
	userRouter.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("Authorization") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Need authenticated").WithDetail("login first")
		}
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})
	GET(userRouter, "/private", echo)
	GET(r, "/public", echo)

	status, env := serve(t, r, http.MethodGet, "/private?name=a", "")
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, int64(errorx.Unauthenticated), env.Code)
	require.Equal(t, "Need authenticated", env.Error)
	require.JSONEq(t, `"login first"`, string(env.Data))

	req := httptest.NewRequest(http.MethodGet, "/private?name=a", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	r.Handler(config.ServerConfigs{}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user":"user1"`)

	// The branch middleware does not leak into the parent router.
	status, _ = serve(t, r, http.MethodGet, "/public?name=a", "")
	require.Equal(t, http.StatusOK, status)

	require.Equal(t, []string{"/private", "/private", "/public"}, closed)
}

func TestRouter_UnexpectedError(t *testing.T) {
	r := newTestRouter()
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errors.New("database is down")
	})

	status, env := serve(t, r, http.MethodGet, "/fail?name=a", "")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, errorx.Unknown.Message, env.Error)
	require.NotContains(t, env.Error, "database")
}

func TestRouter_After(t *testing.T) {
	r := newTestRouter()
	r.After(func(ctx context.Context) (context.Context, error) {
		resp := xcontext.Response(ctx).(*echoResponse)
		resp.Name = strings.ToUpper(resp.Name)
		return ctx, nil
	})
	GET(r, "/echo", echo)

	status, env := serve(t, r, http.MethodGet, "/echo?name=carol", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"name":"CAROL","limit":0}`, string(env.Data))
}

type liveRequest struct{}

func TestRouter_Websocket(t *testing.T) {
	r := newTestRouter()
	Websocket(r, "/live", func(ctx context.Context, req *liveRequest) error {
		client := xcontext.WSClient(ctx)
		for msg := range client.R {
			if err := client.Write(append([]byte("echo:"), msg...), false); err != nil {
				return err
			}
		}
		return nil
	})

	srv := httptest.NewServer(r.Handler(config.ServerConfigs{}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "echo:hello", string(msg))
}

func TestRouter_WebsocketRejectedBeforeUpgrade(t *testing.T) {
	r := newTestRouter()
	r.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "Need authenticated")
	})
	Websocket(r, "/live", func(ctx context.Context, req *liveRequest) error {
		return nil
	})

	srv := httptest.NewServer(r.Handler(config.ServerConfigs{}))
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
