// Package web contains a small web framework extension.
package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrazmi/tasktracker/sdk/logger"
)

// Encoder defines behavior that can encode a data model and provide
// the content type for that encoding.
type Encoder interface {
	Encode() (data []byte, contentType string, err error)
}

// HandlerFunc represents a function that handles a http request within our own
// little mini framework.
type HandlerFunc func(ctx context.Context, r *http.Request) Encoder

// Telemetry represents a function that can call telemetry functions
type Telemetry interface {
	SetTraceID(ctx context.Context) context.Context
	GetTraceID(ctx context.Context) string
}

// App is the entrypoint into our application and what configures our context
// object for each of our http handlers.
type App struct {
	log           *logger.Logger
	mux           *http.ServeMux
	telemetry     Telemetry
	globalMw      map[string]MidFunc
	mwGlobalOrder []string
}

// NewApp creates an App value that handle a set of routes for the application.
func NewApp(log *logger.Logger, telemetry Telemetry) *App {
	return &App{
		log:           log,
		telemetry:     telemetry,
		mux:           http.NewServeMux(),
		globalMw:      make(map[string]MidFunc),
		mwGlobalOrder: append([]string(nil), globalMWOrder...),
	}
}

// ServeHTTP implements the http.Handler interface.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// HandlerFunc sets a handler function with the global middleware and any
// route specific middleware applied. Route middleware runs inside the
// global chain.
func (a *App) HandlerFunc(method string, group string, path string, handlerFunc HandlerFunc, mw ...MidFunc) {
	handlerFunc = wrapMiddleware(mw, handlerFunc)
	handlerFunc = wrapMiddleware(a.globalChain(), handlerFunc)

	a.mux.HandleFunc(a.buildFinalPath(method, group, path), a.adapt(handlerFunc))
}

// HandlePreflight answers OPTIONS on every path through the global
// middleware so the cors middleware can reply to browser preflights.
// Register it after the global middleware has been added.
func (a *App) HandlePreflight() {
	a.HandlerFunc(http.MethodOptions, "", "/", func(ctx context.Context, r *http.Request) Encoder {
		return nil
	})
}

// HandleRaw registers a plain http.Handler, bypassing the framework.
func (a *App) HandleRaw(pattern string, handler http.Handler) {
	a.mux.Handle(pattern, handler)
}

func (a *App) adapt(handlerFunc HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if a.telemetry != nil {
			ctx = a.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)

		resp := handlerFunc(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && a.log != nil {
			a.log.ErrorContext(ctx, "web-respond", "err", err)
		}
	}
}

// buildFinalPath constructs the final path for the mux
func (a *App) buildFinalPath(method, group, path string) string {
	finalPath := path
	if group != "" {
		finalPath = "/" + group + path
	}
	return fmt.Sprintf("%s %s", method, finalPath)
}
