package web

import "strings"

// RouteGroup registers routes under a shared path prefix and middleware.
type RouteGroup struct {
	app        *App
	prefix     string
	middleware []MidFunc
}

// Group starts a route group rooted at prefix.
func (a *App) Group(prefix string, middleware ...MidFunc) *RouteGroup {
	return &RouteGroup{
		app:        a,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

// Handle registers handler for method at the group prefix + path.
func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...MidFunc) {
	all := append(append([]MidFunc(nil), g.middleware...), middleware...)
	g.app.HandlerFunc(method, "", g.prefix+path, handler, all...)
}

// Group nests a group below g.
func (g *RouteGroup) Group(prefix string, middleware ...MidFunc) *RouteGroup {
	return &RouteGroup{
		app:        g.app,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: append(append([]MidFunc(nil), g.middleware...), middleware...),
	}
}
