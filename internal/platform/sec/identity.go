// Copyright (c) 2026 F-Students App. All rights reserved.

package sec

import "github.com/f-students-app/auth-service/internal/platform/constants"

// # Authenticated Identity

// Identity is the immutable authenticated principal attached to a request
// by the session authenticator after the live user record has been loaded.
//
// Role codes here are re-derived from storage on every request. The token's
// embedded role claims are trusted only for the authorization-stage gate.
type Identity struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// HasAnyRole reports whether the identity holds at least one of the allowed
// role codes.
//
// # Superadmin Bypass
//
// An identity carrying [constants.RoleSuperadmin] passes every role check
// unconditionally. This is an explicit, testable special case rather than a
// convention buried in handler code.
func (identity Identity) HasAnyRole(allowed ...string) bool {
	roleSet := make(map[string]struct{}, len(identity.Roles))
	for _, code := range identity.Roles {
		roleSet[code] = struct{}{}
	}

	if _, ok := roleSet[constants.RoleSuperadmin]; ok {
		return true
	}

	for _, code := range allowed {
		if _, ok := roleSet[code]; ok {
			return true
		}
	}

	return false
}
