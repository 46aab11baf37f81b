package domain

// Identity is the authenticated caller decoded from an access token.
type Identity struct {
	ID       int64
	Username string
	Role     Role
}

// Is reports whether the identity holds the given role.
func (i Identity) Is(role Role) bool {
	return i.Role == role
}
