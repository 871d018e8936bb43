package schema

// IAMRefreshTokenTable represents the 'iam.refreshtoken' table
type IAMRefreshTokenTable struct {
	Table     string
	ID        string
	UserID    string
	Token     string
	UserAgent string
	IPAddress string
	ExpiresAt string
	RevokedAt string
	CreatedAt string
}

// IAMRefreshToken is the schema definition for iam.refreshtoken
var IAMRefreshToken = IAMRefreshTokenTable{
	Table:     "iam.refreshtoken",
	ID:        "id",
	UserID:    "userid",
	Token:     "token",
	UserAgent: "useragent",
	IPAddress: "ipaddress",
	ExpiresAt: "expiresat",
	RevokedAt: "revokedat",
	CreatedAt: "createdat",
}

func (t IAMRefreshTokenTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Token, t.UserAgent, t.IPAddress, t.ExpiresAt, t.RevokedAt, t.CreatedAt}
}
