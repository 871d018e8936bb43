package role

import "time"

// Role is a named permission bundle assigned to user accounts.
type Role struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Level       int        `json:"level"` // higher outranks lower
	IsSystem    bool       `json:"isSystem"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// AccessGrant is one module permission row for a role.
type AccessGrant struct {
	ModuleID    string `json:"moduleId"`
	CanView     bool   `json:"canView"`
	CanCreate   bool   `json:"canCreate"`
	CanUpdate   bool   `json:"canUpdate"`
	CanDelete   bool   `json:"canDelete"`
	CanViewAll  bool   `json:"canViewAll"`
	CanDownload bool   `json:"canDownload"`
	CanApprove  bool   `json:"canApprove"`
}

// Filter holds the parameters for a paginated role search.
type Filter struct {
	Query string // Matched against code and name
}

const (
	FieldCode        = "code"
	FieldName        = "name"
	FieldDescription = "description"
	FieldLevel       = "level"
	FieldModuleID    = "moduleId"
	FieldGrants      = "grants"
)
