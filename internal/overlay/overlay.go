// Package overlay exposes the reading-mode toggle to host pages: a
// websocket per page view, the control surface description and the
// script that binds both to the page.
package overlay

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/accessblock/internal/bionic"
)

// Overlay serves the page-view adapter for the bionic toggle.
type Overlay struct {
	transformer bionic.Transformer
	labels      bionic.Labels
	timeout     time.Duration
	logger      *logrus.Entry
}

// New creates an Overlay. Every page view gets its own session and
// engine; the transformer is shared.
func New(transformer bionic.Transformer, labels bionic.Labels, timeout time.Duration, logger *logrus.Entry) *Overlay {
	return &Overlay{
		transformer: transformer,
		labels:      labels,
		timeout:     timeout,
		logger:      logger,
	}
}

// RegisterRoutes mounts the overlay endpoints.
func (o *Overlay) RegisterRoutes(r chi.Router) {
	r.Get("/accessibility/ws/bionic", o.handleWebSocket)
	r.Get("/accessibility/controls", o.handleControls)
	r.Get("/accessibility/bionic.js", o.ServeScript)
}

func (o *Overlay) handleControls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bionic.ControlSurface(o.labels))
}
