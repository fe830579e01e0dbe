package web

import "slices"

// MidFunc is a handler function designed to run code before and/or after
// another Handler.
type MidFunc func(handler HandlerFunc) HandlerFunc

// globalMWOrder is the outermost-first order of the well known global
// middleware names. Names not listed here run after these, in the order
// they were added.
var globalMWOrder = []string{"cors", "logger", "errors", "metrics", "panics"}

// AddGlobalMiddleware registers mw under name for every route registered
// afterwards with HandlerFunc. Adding an existing name replaces it.
func (a *App) AddGlobalMiddleware(name string, mw MidFunc) {
	if _, exists := a.globalMw[name]; !exists && !slices.Contains(a.mwGlobalOrder, name) {
		a.mwGlobalOrder = append(a.mwGlobalOrder, name)
	}
	a.globalMw[name] = mw
}

func (a *App) globalChain() []MidFunc {
	chain := make([]MidFunc, 0, len(a.globalMw))
	for _, name := range a.mwGlobalOrder {
		if mw, ok := a.globalMw[name]; ok {
			chain = append(chain, mw)
		}
	}
	return chain
}

// wrapMiddleware wraps handler so that mw[0] is the outermost layer.
func wrapMiddleware(mw []MidFunc, handler HandlerFunc) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			handler = mw[i](handler)
		}
	}
	return handler
}
