package config

// Response type names for routes.
const (
	// ResponseTypeText serves a fixed plain-text body.
	ResponseTypeText = "text"

	// ResponseTypeJSON serves a fixed JSON body.
	ResponseTypeJSON = "json"

	// ResponseTypeParams echoes the captured path parameters as JSON.
	ResponseTypeParams = "params"
)

// Route represents a single routing rule configuration.
type Route struct {
	// Name is the unique identifier for this route.
	Name string `yaml:"name" json:"name"`

	// Path is the route pattern, e.g. "/users/{id}" or "/static/{*path}".
	Path string `yaml:"path" json:"path"`

	// Methods restricts the route to the listed HTTP methods.
	// Empty means all methods are accepted.
	Methods []string `yaml:"methods,omitempty" json:"methods,omitempty"`

	// Response describes what the route serves.
	Response *ResponseConfig `yaml:"response,omitempty" json:"response,omitempty"`
}

// ResponseConfig describes the response a route serves.
type ResponseConfig struct {
	// Type is one of "text", "json", or "params".
	Type string `yaml:"type" json:"type"`

	// Status is the HTTP status code, defaulting to 200.
	Status int `yaml:"status,omitempty" json:"status,omitempty"`

	// Body is the response body for text and json types.
	Body string `yaml:"body,omitempty" json:"body,omitempty"`
}
