package schema

// IAMPasswordResetTokenTable represents the 'iam.passwordresettoken' table
type IAMPasswordResetTokenTable struct {
	Table     string
	ID        string
	UserID    string
	Token     string
	ExpiresAt string
	UsedAt    string
	CreatedAt string
}

// IAMPasswordResetToken is the schema definition for iam.passwordresettoken
var IAMPasswordResetToken = IAMPasswordResetTokenTable{
	Table:     "iam.passwordresettoken",
	ID:        "id",
	UserID:    "userid",
	Token:     "token",
	ExpiresAt: "expiresat",
	UsedAt:    "usedat",
	CreatedAt: "createdat",
}

func (t IAMPasswordResetTokenTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Token, t.ExpiresAt, t.UsedAt, t.CreatedAt}
}
