package schema

// IAMPasswordHistoryTable represents the 'iam.passwordhistory' table
type IAMPasswordHistoryTable struct {
	Table        string
	ID           string
	UserID       string
	PasswordHash string
	CreatedAt    string
}

// IAMPasswordHistory is the schema definition for iam.passwordhistory
var IAMPasswordHistory = IAMPasswordHistoryTable{
	Table:        "iam.passwordhistory",
	ID:           "id",
	UserID:       "userid",
	PasswordHash: "passwordhash",
	CreatedAt:    "createdat",
}

func (t IAMPasswordHistoryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.PasswordHash, t.CreatedAt}
}
