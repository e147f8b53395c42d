package server

import (
	"net/http"

	"github.com/vyrodovalexey/avarouter/internal/observability"
	"github.com/vyrodovalexey/avarouter/internal/router"
	"github.com/vyrodovalexey/avarouter/internal/util"
)

// Dispatcher resolves request paths against the active route table and
// serves the configured responses.
type Dispatcher struct {
	router *router.Router
	logger observability.Logger
}

// NewDispatcher creates a dispatcher over the given router.
func NewDispatcher(rtr *router.Router, logger observability.Logger) *Dispatcher {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Dispatcher{router: rtr, logger: logger}
}

// Router returns the underlying router, for table swaps and checks.
func (d *Dispatcher) Router() *router.Router {
	return d.router
}

// ServeHTTP implements http.Handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, ok := d.router.Match(r.URL.Path)
	if !ok {
		err := util.NewRouteNotFoundError(r.Method, r.URL.Path)
		d.logger.WithContext(r.Context()).Debug("no route matched",
			observability.Error(err),
			observability.String("method", r.Method),
			observability.String("path", r.URL.Path),
		)
		util.WriteJSONError(w, http.StatusNotFound, "route not found")
		return
	}

	target, ok := result.Value.(*routeTarget)
	if !ok {
		d.logger.Error("route table holds unexpected value type",
			observability.String("pattern", result.Pattern),
		)
		util.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Outer middleware read the matched route off the response writer
	// chain after the handler returns.
	util.RecordRoute(w, result.Pattern)

	ctx := util.ContextWithRoute(r.Context(), result.Pattern)
	if params := result.Params.Map(); params != nil {
		ctx = util.ContextWithPathParams(ctx, params)
	}
	r = r.WithContext(ctx)

	if !target.allowsMethod(r.Method) {
		w.Header().Set("Allow", target.allow)
		util.WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	serveResponse(w, r, target, result.Params)
}
