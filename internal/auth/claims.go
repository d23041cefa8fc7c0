// Package auth carries the caller identity the upstream authorizer resolved.
// Identity issuance itself happens outside this service; requests arrive with
// already-verified claims.
package auth

import (
	"context"
	"strings"
)

// Role is a closed set of caller roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleSales Role = "sales"
)

// Claims identifies the caller of a request.
type Claims struct {
	Subject string
	Roles   []Role
}

// HasAny reports whether the claims include at least one of the given roles.
func (c Claims) HasAny(roles ...Role) bool {
	for _, want := range roles {
		for _, got := range c.Roles {
			if got == want {
				return true
			}
		}
	}
	return false
}

// ParseRoles converts a comma-separated role list into known roles,
// dropping anything outside the closed set.
func ParseRoles(raw string) []Role {
	var roles []Role
	for _, part := range strings.Split(raw, ",") {
		switch Role(strings.TrimSpace(strings.ToLower(part))) {
		case RoleAdmin:
			roles = append(roles, RoleAdmin)
		case RoleSales:
			roles = append(roles, RoleSales)
		}
	}
	return roles
}

type claimsContextKey struct{}

// ContextWithClaims stores the claims in context.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts the claims from context.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(Claims)
	return claims, ok
}
