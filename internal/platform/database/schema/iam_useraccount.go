package schema

// IAMUserAccountTable represents the 'iam.useraccount' table
type IAMUserAccountTable struct {
	Table               string
	ID                  string
	Username            string
	Email               string
	PasswordHash        string
	FullName            string
	IsActive            string
	MustChangePassword  string
	PasswordChangedAt   string
	FailedLoginAttempts string
	LockedUntil         string
	LastLoginAt         string
	LastLoginIP         string
	CreatedAt           string
	UpdatedAt           string
	DeletedAt           string
}

// IAMUserAccount is the schema definition for iam.useraccount
var IAMUserAccount = IAMUserAccountTable{
	Table:               "iam.useraccount",
	ID:                  "id",
	Username:            "username",
	Email:               "email",
	PasswordHash:        "passwordhash",
	FullName:            "fullname",
	IsActive:            "isactive",
	MustChangePassword:  "mustchangepassword",
	PasswordChangedAt:   "passwordchangedat",
	FailedLoginAttempts: "failedloginattempts",
	LockedUntil:         "lockeduntil",
	LastLoginAt:         "lastloginat",
	LastLoginIP:         "lastloginip",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
	DeletedAt:           "deletedat",
}

func (t IAMUserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.FullName, t.IsActive,
		t.MustChangePassword, t.PasswordChangedAt,
		t.FailedLoginAttempts, t.LockedUntil, t.LastLoginAt, t.LastLoginIP,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
