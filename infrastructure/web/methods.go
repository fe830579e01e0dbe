package web

import "net/http"

func (g *RouteGroup) GET(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle(http.MethodGet, path, handler, middleware...)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle(http.MethodPost, path, handler, middleware...)
}

func (g *RouteGroup) PUT(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle(http.MethodPut, path, handler, middleware...)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc, middleware ...MidFunc) {
	g.Handle(http.MethodDelete, path, handler, middleware...)
}
