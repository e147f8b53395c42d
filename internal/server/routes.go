package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/vyrodovalexey/avarouter/internal/config"
	"github.com/vyrodovalexey/avarouter/internal/router"
)

// routeTarget is the value registered in the route table for each
// configured route.
type routeTarget struct {
	name     string
	methods  map[string]bool
	allow    string
	response config.ResponseConfig
}

// newRouteTarget builds a routeTarget from a route config.
func newRouteTarget(route config.Route) *routeTarget {
	t := &routeTarget{
		name:    route.Name,
		methods: make(map[string]bool, len(route.Methods)),
	}

	if route.Response != nil {
		t.response = *route.Response
	}
	if t.response.Type == "" {
		t.response.Type = config.ResponseTypeText
	}
	if t.response.Status == 0 {
		t.response.Status = http.StatusOK
	}

	for _, m := range route.Methods {
		t.methods[m] = true
	}

	// Precompute the Allow header for 405 responses
	allowed := make([]string, 0, len(t.methods))
	for m := range t.methods {
		allowed = append(allowed, m)
	}
	sort.Strings(allowed)
	t.allow = strings.Join(allowed, ", ")

	return t
}

// allowsMethod reports whether the target accepts the given HTTP
// method. An empty method set accepts everything.
func (t *routeTarget) allowsMethod(method string) bool {
	if len(t.methods) == 0 {
		return true
	}
	return t.methods[method]
}

// BuildTable builds an immutable route table from route configs.
// Pattern syntax errors and route conflicts are returned as-is from
// the registration layer.
func BuildTable(routes []config.Route) (*router.Table, error) {
	builder := router.NewBuilder()
	for _, route := range routes {
		if err := builder.Register(route.Path, newRouteTarget(route)); err != nil {
			return nil, err
		}
	}
	return builder.Finalize(), nil
}
