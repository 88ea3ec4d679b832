package models

// AuthenticatedUser is the caller resolved from a verified Clerk session token.
type AuthenticatedUser struct {
	UserID    string
	SessionID string
	OrgID     string
}
