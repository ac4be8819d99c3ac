package domain

import (
	"context"
	"strings"
)

const RoleServiceAccount = "SERVICE_ACCOUNT"

// Principal is the caller identity propagated by the upstream gateway through
// the X-User-Id and X-User-Roles headers.
type Principal struct {
	UserID string
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

// Auditor resolves the audit-stamp value written into created_by/updated_by.
// Store writes with no principal in context (reaper, bootstrap) stamp "system".
func (p Principal) Auditor() string {
	if strings.TrimSpace(p.UserID) == "" {
		return "system-default"
	}
	return "user-" + p.UserID
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// AuditorFrom is what the repositories stamp on every write.
func AuditorFrom(ctx context.Context) string {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return "system"
	}
	return p.Auditor()
}
