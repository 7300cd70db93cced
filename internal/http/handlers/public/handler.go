// Package public holds the storefront-facing API handlers. Every endpoint
// works for guests; a bearer token only adds profile persistence.
package public

import "github.com/aurelia-jewelry/aurelia/internal/provider"

// Handler is the storefront API handler entry point.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
