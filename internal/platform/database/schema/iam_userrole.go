package schema

// IAMUserRoleTable represents the 'iam.userrole' join table
type IAMUserRoleTable struct {
	Table     string
	ID        string
	UserID    string
	RoleID    string
	CreatedAt string
}

// IAMUserRole is the schema definition for iam.userrole
var IAMUserRole = IAMUserRoleTable{
	Table:     "iam.userrole",
	ID:        "id",
	UserID:    "userid",
	RoleID:    "roleid",
	CreatedAt: "createdat",
}

func (t IAMUserRoleTable) Columns() []string {
	return []string{t.ID, t.UserID, t.RoleID, t.CreatedAt}
}
