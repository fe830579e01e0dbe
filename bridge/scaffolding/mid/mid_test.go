package mid_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktracker/infrastructure/web"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainErr struct{ error }

func (plainErr) Encode() ([]byte, string, error) { return nil, "", nil }

func newApp(buf *bytes.Buffer) *web.App {
	log := logger.NewDefault(logger.WithOutput(buf))
	app := web.NewApp(log, nil)
	app.AddGlobalMiddleware("cors", mid.CORS("http://allowed.test"))
	app.AddGlobalMiddleware("logger", mid.Logger(log))
	app.AddGlobalMiddleware("errors", mid.Errors(log))
	app.AddGlobalMiddleware("metrics", mid.Metrics())
	app.AddGlobalMiddleware("panics", mid.Panics())
	app.HandlePreflight()
	return app
}

func serve(app *web.App, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		r.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, r)
	return rec
}

func TestErrors_AppErrorPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)
	app.HandlerFunc(http.MethodGet, "", "/missing", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "task not found: %d", 5)
	})

	rec := serve(app, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"not_found","message":"task not found: 5"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "handled error during request")
}

func TestErrors_MasksInternalDetails(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)
	app.HandlerFunc(http.MethodGet, "", "/only-log", func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.New(errs.InternalOnlyLog, errors.New("connection refused to 10.0.0.1"))
	})
	app.HandlerFunc(http.MethodGet, "", "/plain", func(ctx context.Context, r *http.Request) web.Encoder {
		return plainErr{errors.New("boom")}
	})

	for _, p := range []string{"/only-log", "/plain"} {
		rec := serve(app, http.MethodGet, p, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, p)
		assert.JSONEq(t, `{"code":"internal","message":"Internal Server Error"}`, rec.Body.String(), p)
	}
	assert.Contains(t, buf.String(), "connection refused to 10.0.0.1")
}

func TestPanics(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)
	app.HandlerFunc(http.MethodGet, "", "/panic", func(ctx context.Context, r *http.Request) web.Encoder {
		panic("kaboom")
	})

	rec := serve(app, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "kaboom")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestCORSAndLogger(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)
	app.HandlerFunc(http.MethodGet, "", "/ok", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(map[string]string{"status": "ok"})
	})

	rec := serve(app, http.MethodGet, "/ok?x=1", map[string]string{"Origin": "http://allowed.test"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://allowed.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, buf.String(), "request completed")
	assert.Contains(t, buf.String(), `"path":"/ok?x=1"`)

	rec = serve(app, http.MethodGet, "/ok", map[string]string{"Origin": "http://other.test"})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)

	var called bool
	app.HandlerFunc(http.MethodPut, "", "/api/tasks/{task_id}/toggle", func(ctx context.Context, r *http.Request) web.Encoder {
		called = true
		return nil
	})

	rec := serve(app, http.MethodOptions, "/api/tasks/1/toggle", map[string]string{
		"Origin":                        "http://allowed.test",
		"Access-Control-Request-Method": http.MethodPut,
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://allowed.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Empty(t, rec.Body.String())
	assert.False(t, called)

	rec = serve(app, http.MethodOptions, "/anything/else", map[string]string{"Origin": "http://other.test"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
