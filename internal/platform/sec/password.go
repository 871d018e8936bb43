// Copyright (c) 2026 F-Students App. All rights reserved.

package sec

import (
	"strings"
	"unicode"
)

// passwordSpecialSet is the fixed set of accepted special characters.
const passwordSpecialSet = "@$!%*?&"

// PasswordPolicy is the configurable strength policy applied to every new
// password (reset and change flows).
//
// A password satisfies the policy only if every ENABLED requirement holds;
// disabled requirements are skipped entirely.
type PasswordPolicy struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate reports whether the candidate password satisfies the policy.
func (policy PasswordPolicy) Validate(password string) bool {
	if len(password) < policy.MinLength {
		return false
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return false
	}
	if policy.RequireLower && !hasLower {
		return false
	}
	if policy.RequireNumber && !hasNumber {
		return false
	}
	if policy.RequireSpecial && !strings.ContainsAny(password, passwordSpecialSet) {
		return false
	}

	return true
}
