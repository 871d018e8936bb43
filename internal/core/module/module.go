package module

import "time"

// Module is a functional area of the platform that permissions attach to.
type Module struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	ParentID  *string    `json:"parentId"`
	SortOrder int        `json:"sortOrder"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"` // soft-delete tracker

	// Children holds nested modules, populated in hierarchical listings.
	Children []*Module `json:"children,omitempty"`
}

// Filter holds the parameters for a module listing.
type Filter struct {
	IncludeInactive bool
}

const (
	FieldCode      = "code"
	FieldName      = "name"
	FieldParentID  = "parentId"
	FieldSortOrder = "sortOrder"
)
