package server

import (
	"net/http"

	"github.com/vyrodovalexey/avarouter/internal/config"
	"github.com/vyrodovalexey/avarouter/internal/router"
	"github.com/vyrodovalexey/avarouter/internal/util"
)

// paramsResponse is the body served by params-type routes.
type paramsResponse struct {
	Route  string            `json:"route"`
	Params map[string]string `json:"params,omitempty"`
}

// serveResponse writes the response configured for the matched route.
func serveResponse(
	w http.ResponseWriter,
	r *http.Request,
	target *routeTarget,
	params router.Params,
) {
	switch target.response.Type {
	case config.ResponseTypeJSON:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(target.response.Status)
		_, _ = w.Write([]byte(target.response.Body))

	case config.ResponseTypeParams:
		util.WriteJSON(w, target.response.Status, paramsResponse{
			Route:  util.RouteFromContext(r.Context()),
			Params: params.Map(),
		})

	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(target.response.Status)
		_, _ = w.Write([]byte(target.response.Body))
	}
}
