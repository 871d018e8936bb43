package schema

// IAMLoginHistoryTable represents the append-only 'iam.loginhistory' table
type IAMLoginHistoryTable struct {
	Table     string
	ID        string
	UserID    string
	Username  string
	IPAddress string
	UserAgent string
	Status    string
	CreatedAt string
}

// IAMLoginHistory is the schema definition for iam.loginhistory
var IAMLoginHistory = IAMLoginHistoryTable{
	Table:     "iam.loginhistory",
	ID:        "id",
	UserID:    "userid",
	Username:  "username",
	IPAddress: "ipaddress",
	UserAgent: "useragent",
	Status:    "status",
	CreatedAt: "createdat",
}

func (t IAMLoginHistoryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Username, t.IPAddress, t.UserAgent, t.Status, t.CreatedAt}
}
