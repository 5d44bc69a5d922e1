package prefs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/accessblock/internal/identity"
)

// RouteOptions tunes the HTTP surface.
type RouteOptions struct {
	// MaxAge is the stylesheet's Cache-Control max-age. Zero forces
	// revalidation on every request.
	MaxAge time.Duration
	// UserHeader is the request header the host puts the user id in. It is
	// listed in the stylesheet's Vary header.
	UserHeader string
	// Editors are the user ids allowed to change instance schemes. Empty
	// means nobody can.
	Editors []string
}

const (
	msgSaved   = "Setting Saved"
	msgCleared = "Setting Cleared"
)

// RegisterRoutes mounts preference endpoints under /accessibility.
func RegisterRoutes(r chi.Router, c *Controller, opts RouteOptions) {
	r.Group(func(r chi.Router) {
		r.Use(identity.RequireUser)

		r.Get("/accessibility/userstyles.css", handleStyleSheet(c, opts))
		r.Get("/accessibility/preference", handleGetPreference(c))
		r.Post("/accessibility/preference", handlePersist(c))
		r.Post("/accessibility/size", handleSize(c))
		r.Post("/accessibility/colour", handleColour(c))
		r.Get("/accessibility/instances/{instanceID}/schemes", handleInstanceSchemes(c))
		r.With(identity.RequireEditor(opts.Editors)).
			Put("/accessibility/instances/{instanceID}/schemes/{schemeID}", handleSetInstanceScheme(c))
	})
}

func handleStyleSheet(c *Controller, opts RouteOptions) http.HandlerFunc {
	cacheControl := "private, no-cache"
	if opts.MaxAge > 0 {
		cacheControl = fmt.Sprintf("private, max-age=%d", int(opts.MaxAge.Seconds()))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())

		css, err := c.StyleSheet(r.Context(), userID, r.URL.Query().Get("instance_id"))
		if err != nil {
			writeError(w, err)
			return
		}

		etag := ETag(css)
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", cacheControl)
		if opts.UserHeader != "" {
			w.Header().Set("Vary", opts.UserHeader)
		}
		if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(css)
	}
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func handleGetPreference(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())
		aff, err := c.Affordances(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, aff)
	}
}

func handlePersist(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())

		change := Change{
			Op:     Op(formValue(r, "op")),
			Size:   flag(formValue(r, "size")),
			Scheme: flag(formValue(r, "scheme")),
		}
		if _, err := c.Persist(r.Context(), userID, change); err != nil {
			respondError(w, r, err)
			return
		}

		msg := msgSaved
		if change.Op == OpReset {
			msg = msgCleared
		}
		respond(w, r, c, userID, msg)
	}
}

func handleSize(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())

		dir, err := ParseDirection(formValue(r, "op"))
		if err != nil {
			respondError(w, r, err)
			return
		}
		if _, err := c.ChangeSize(r.Context(), userID, dir); err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, r, c, userID, "")
	}
}

func handleColour(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := identity.UserID(r.Context())

		raw := formValue(r, "scheme")
		id, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, &ValidationError{Field: "scheme", Value: raw, Reason: "must be a number"})
			return
		}
		if _, err := c.ChangeColour(r.Context(), userID, id); err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, r, c, userID, "")
	}
}

func handleInstanceSchemes(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schemes, err := c.InstanceSchemes(r.Context(), chi.URLParam(r, "instanceID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, schemes)
	}
}

func handleSetInstanceScheme(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "schemeID")
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, &ValidationError{Field: "scheme", Value: raw, Reason: "must be a number"})
			return
		}

		var body Scheme
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, &ValidationError{Field: "body", Value: "", Reason: err.Error()})
			return
		}
		body.ID = id

		if err := c.SetInstanceScheme(r.Context(), chi.URLParam(r, "instanceID"), body); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// respond answers script callers with the current affordances and
// everyone else with a redirect back to the page they came from.
func respond(w http.ResponseWriter, r *http.Request, c *Controller, userID, msg string) {
	if !isAjax(r) {
		http.Redirect(w, r, localRedirect(formValue(r, "redirect")), http.StatusSeeOther)
		return
	}
	aff, err := c.Affordances(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    msg,
		"preference": aff,
	})
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if !isAjax(r) && IsValidation(err) {
		http.Redirect(w, r, localRedirect(formValue(r, "redirect")), http.StatusSeeOther)
		return
	}
	writeError(w, err)
}

func isAjax(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// localRedirect accepts only same-site paths.
func localRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

func flag(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case IsValidation(err):
		status = http.StatusBadRequest
	case IsUnavailable(err):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
