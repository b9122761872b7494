package public

import "github.com/bec-billdesk/internal/provider"

// Handler serves the student-facing and anonymous API.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
