package auth

import (
	"log/slog"
	"net/http"

	"github.com/balu-pos/balu-pos/internal/platform/httpx"
)

// Headers populated by the upstream authorizer.
const (
	HeaderSubject = "X-Claims-Subject"
	HeaderRoles   = "X-Claims-Roles"
)

// Middleware wires claim extraction and role guards for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// Extract reads the authorizer headers into request-scoped claims. Requests
// without claims still pass through; role guards reject them later.
func (m Middleware) Extract(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := r.Header.Get(HeaderSubject)
		roles := ParseRoles(r.Header.Get(HeaderRoles))
		if subject == "" && len(roles) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		claims := Claims{Subject: subject, Roles: roles}
		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// Require ensures the caller holds at least one of the given roles.
func (m Middleware) Require(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !claims.HasAny(roles...) {
				if m.Logger != nil {
					m.Logger.Warn("authorization denied",
						slog.String("path", r.URL.Path),
						slog.String("subject", claims.Subject))
				}
				httpx.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
