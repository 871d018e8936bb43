package schema

// IAMModuleTable represents the 'iam.module' table
type IAMModuleTable struct {
	Table     string
	ID        string
	Code      string
	Name      string
	ParentID  string
	SortOrder string
	IsActive  string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// IAMModule is the schema definition for iam.module
var IAMModule = IAMModuleTable{
	Table:     "iam.module",
	ID:        "id",
	Code:      "code",
	Name:      "name",
	ParentID:  "parentid",
	SortOrder: "sortorder",
	IsActive:  "isactive",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t IAMModuleTable) Columns() []string {
	return []string{
		t.ID, t.Code, t.Name, t.ParentID, t.SortOrder, t.IsActive,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
