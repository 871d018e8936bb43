// Copyright (c) 2026 F-Students App. All rights reserved.

package authorize

import "context"

// GrantRepository defines the data access contract for module-access grants.
type GrantRepository interface {
	// ListForRoles returns every grant row attached to the given role
	// codes, restricted to active roles and active, non-deleted modules.
	// Duplicate (role, module) combinations are returned as-is; the
	// service layer aggregates them.
	ListForRoles(ctx context.Context, roleCodes []string) ([]Grant, error)
}
