package schema

// IAMModuleAccessTable represents the 'iam.moduleaccess' table
type IAMModuleAccessTable struct {
	Table       string
	ID          string
	RoleID      string
	ModuleID    string
	CanView     string
	CanCreate   string
	CanUpdate   string
	CanDelete   string
	CanViewAll  string
	CanDownload string
	CanApprove  string
	CreatedAt   string
	UpdatedAt   string
}

// IAMModuleAccess is the schema definition for iam.moduleaccess
var IAMModuleAccess = IAMModuleAccessTable{
	Table:       "iam.moduleaccess",
	ID:          "id",
	RoleID:      "roleid",
	ModuleID:    "moduleid",
	CanView:     "canview",
	CanCreate:   "cancreate",
	CanUpdate:   "canupdate",
	CanDelete:   "candelete",
	CanViewAll:  "canviewall",
	CanDownload: "candownload",
	CanApprove:  "canapprove",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t IAMModuleAccessTable) Columns() []string {
	return []string{
		t.ID, t.RoleID, t.ModuleID,
		t.CanView, t.CanCreate, t.CanUpdate, t.CanDelete,
		t.CanViewAll, t.CanDownload, t.CanApprove,
		t.CreatedAt, t.UpdatedAt,
	}
}
