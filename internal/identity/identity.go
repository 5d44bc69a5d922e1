// Package identity carries the authenticated user id supplied by the host
// environment. Authentication itself happens upstream; the host forwards
// the user id in a request header.
package identity

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying userID.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID returns the user id stored in ctx, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Middleware copies the value of header into the request context.
// Requests without the header pass through anonymously.
func Middleware(header string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := strings.TrimSpace(r.Header.Get(header)); id != "" {
				r = r.WithContext(WithUser(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser answers 204 No Content for anonymous requests. Anonymous
// visitors get no accessibility controls, which is not an error.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEditor answers 403 Forbidden unless the request's user is one of
// editors. An empty list forbids everyone. It must run after RequireUser
// or Middleware.
func RequireEditor(editors []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(editors))
	for _, e := range editors {
		if e = strings.TrimSpace(e); e != "" {
			allowed[e] = true
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := UserID(r.Context()); !ok || !allowed[id] {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
