package config

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vyrodovalexey/avarouter/internal/router"
	"github.com/vyrodovalexey/avarouter/internal/util"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// HasErrors returns true if there are validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Is reports validation failures as util.ErrConfigInvalid so callers
// can classify them with errors.Is without depending on this type.
func (e ValidationErrors) Is(target error) bool {
	return target == util.ErrConfigInvalid
}

// validMethods is the set of HTTP methods accepted in route configs.
var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// validResponseTypes is the set of response types accepted in route configs.
var validResponseTypes = map[string]bool{
	ResponseTypeText:   true,
	ResponseTypeJSON:   true,
	ResponseTypeParams: true,
}

// Validator validates routing server configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// ValidateConfig validates a routing server configuration.
func ValidateConfig(config *RouterConfig) error {
	v := NewValidator()
	return v.Validate(config)
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *RouterConfig) error {
	v.errors = make(ValidationErrors, 0)

	if config == nil {
		v.addError("", "configuration is nil")
		return v.errors
	}

	v.validateRoot(config)
	v.validateMetadata(&config.Metadata)
	v.validateSpec(&config.Spec)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

// validateRoot validates root-level fields.
func (v *Validator) validateRoot(config *RouterConfig) {
	if config.APIVersion == "" {
		v.addError("apiVersion", "apiVersion is required")
	} else if !strings.HasPrefix(config.APIVersion, "router.avarouter.io/") {
		v.addError("apiVersion", "apiVersion must start with 'router.avarouter.io/'")
	}

	if config.Kind == "" {
		v.addError("kind", "kind is required")
	} else if config.Kind != "Router" {
		v.addError("kind", "kind must be 'Router'")
	}
}

// validateMetadata validates metadata fields.
func (v *Validator) validateMetadata(metadata *Metadata) {
	if metadata.Name == "" {
		v.addError("metadata.name", "name is required")
	}
}

// validateSpec validates the routing server spec.
func (v *Validator) validateSpec(spec *RouterSpec) {
	if spec.Listener.Address == "" {
		v.addError("spec.listener.address", "address is required")
	}

	if len(spec.Routes) == 0 {
		v.addError("spec.routes", "at least one route is required")
	}

	v.validateRoutes(spec.Routes)

	if spec.Observability != nil {
		v.validateObservability(spec.Observability)
	}
}

// validateRoutes validates route configurations, including pattern
// syntax and conflict detection across the full route set.
func (v *Validator) validateRoutes(routes []Route) {
	names := make(map[string]bool)
	builder := router.NewBuilder()

	for i, route := range routes {
		path := fmt.Sprintf("spec.routes[%d]", i)

		if route.Name == "" {
			v.addError(path+".name", "name is required")
		} else if names[route.Name] {
			v.addError(path+".name",
				fmt.Sprintf("duplicate route name %q", route.Name))
		}
		names[route.Name] = true

		if route.Path == "" {
			v.addError(path+".path", "path is required")
			continue
		}

		if _, err := router.ParsePattern(route.Path); err != nil {
			v.addError(path+".path", err.Error())
			continue
		}

		// Registering against a throwaway builder surfaces duplicate
		// and conflicting patterns across the route set.
		if err := builder.Register(route.Path, route.Name); err != nil {
			v.addError(path+".path", err.Error())
		}

		v.validateMethods(route.Methods, path)
		v.validateResponse(route.Response, path)
	}
}

// validateMethods validates the HTTP methods of a route.
func (v *Validator) validateMethods(methods []string, path string) {
	seen := make(map[string]bool)
	for i, method := range methods {
		p := fmt.Sprintf("%s.methods[%d]", path, i)
		if !validMethods[method] {
			v.addError(p, fmt.Sprintf("invalid HTTP method %q", method))
			continue
		}
		if seen[method] {
			v.addError(p, fmt.Sprintf("duplicate method %q", method))
		}
		seen[method] = true
	}
}

// validateResponse validates the response configuration of a route.
func (v *Validator) validateResponse(response *ResponseConfig, path string) {
	if response == nil {
		return
	}

	if !validResponseTypes[response.Type] {
		v.addError(path+".response.type",
			fmt.Sprintf("invalid response type %q", response.Type))
	}

	if response.Status != 0 &&
		(response.Status < 100 || response.Status > 599) {
		v.addError(path+".response.status",
			fmt.Sprintf("invalid status code %d", response.Status))
	}
}

// validateObservability validates observability configuration.
func (v *Validator) validateObservability(obs *ObservabilityConfig) {
	if obs.Logging != nil {
		v.validateLogging(obs.Logging)
	}

	if obs.Metrics != nil && obs.Metrics.Enabled {
		if obs.Metrics.Address == "" {
			v.addError("spec.observability.metrics.address",
				"address is required when metrics are enabled")
		}
	}

	if obs.Tracing != nil {
		if obs.Tracing.SamplingRate < 0 || obs.Tracing.SamplingRate > 1 {
			v.addError("spec.observability.tracing.samplingRate",
				"samplingRate must be between 0 and 1")
		}
	}
}

// validateLogging validates logging configuration.
func (v *Validator) validateLogging(logging *LoggingConfig) {
	switch logging.Level {
	case "", "debug", "info", "warn", "error", "fatal":
	default:
		v.addError("spec.observability.logging.level",
			fmt.Sprintf("invalid log level %q", logging.Level))
	}

	switch logging.Format {
	case "", "json", "console":
	default:
		v.addError("spec.observability.logging.format",
			fmt.Sprintf("invalid log format %q", logging.Format))
	}
}

// addError adds a validation error.
func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{
		Path:    path,
		Message: message,
	})
}
