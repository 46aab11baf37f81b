package domain

import (
	"errors"
	"fmt"
)

// Role enumerates the account roles. The zero value is not a valid role.
type Role uint8

const (
	RoleStudent Role = iota + 1
	RoleHelper
)

// ErrUnknownRole is returned when parsing a value outside the enumeration.
var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts the wire representation into a Role.
func ParseRole(value string) (Role, error) {
	switch value {
	case "student":
		return RoleStudent, nil
	case "helper":
		return RoleHelper, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleHelper
}

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleHelper:
		return "helper"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// MarshalText refuses to encode roles outside the enumeration.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText rejects anything but "student" and "helper".
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
