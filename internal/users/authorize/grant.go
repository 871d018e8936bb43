// Copyright (c) 2026 F-Students App. All rights reserved.

// Package authorize implements the second stage of the token protocol: the
// exchange of a pre-authorization token for the fully authorized token plus
// the caller's effective permission map.
package authorize

// ModulePermissions holds the seven access flags for a single module.
type ModulePermissions struct {
	CanView     bool `json:"canView"`
	CanCreate   bool `json:"canCreate"`
	CanUpdate   bool `json:"canUpdate"`
	CanDelete   bool `json:"canDelete"`
	CanViewAll  bool `json:"canViewAll"`
	CanDownload bool `json:"canDownload"`
	CanApprove  bool `json:"canApprove"`
}

// Merge ORs each flag independently. The most permissive value wins per
// flag, regardless of which grant row supplied it.
func (permissions ModulePermissions) Merge(other ModulePermissions) ModulePermissions {
	return ModulePermissions{
		CanView:     permissions.CanView || other.CanView,
		CanCreate:   permissions.CanCreate || other.CanCreate,
		CanUpdate:   permissions.CanUpdate || other.CanUpdate,
		CanDelete:   permissions.CanDelete || other.CanDelete,
		CanViewAll:  permissions.CanViewAll || other.CanViewAll,
		CanDownload: permissions.CanDownload || other.CanDownload,
		CanApprove:  permissions.CanApprove || other.CanApprove,
	}
}

// Grant is one module-access row resolved for a role the caller holds.
type Grant struct {
	ModuleCode  string
	Permissions ModulePermissions
}
