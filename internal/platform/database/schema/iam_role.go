package schema

// IAMRoleTable represents the 'iam.role' table
type IAMRoleTable struct {
	Table       string
	ID          string
	Code        string
	Name        string
	Description string
	Level       string
	IsSystem    string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// IAMRole is the schema definition for iam.role
var IAMRole = IAMRoleTable{
	Table:       "iam.role",
	ID:          "id",
	Code:        "code",
	Name:        "name",
	Description: "description",
	Level:       "level",
	IsSystem:    "issystem",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t IAMRoleTable) Columns() []string {
	return []string{
		t.ID, t.Code, t.Name, t.Description, t.Level, t.IsSystem, t.IsActive,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
