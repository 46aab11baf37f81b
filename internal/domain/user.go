package domain

// User is a registered account. Users are created once through
// registration and never mutated afterwards.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
}

// Identity returns the fixed-shape identity carried in access tokens.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// UserSummary is the public projection of a user used in helper listings.
type UserSummary struct {
	ID       int64
	Username string
}
