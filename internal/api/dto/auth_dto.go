package dto

import "github.com/devdesk/queue-api/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	Token    string      `json:"token"`
}

// UserSummaryResponse is an entry of the helper list.
type UserSummaryResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserSummaries converts domain summaries.
func UserSummaries(users []domain.UserSummary) []UserSummaryResponse {
	out := make([]UserSummaryResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummaryResponse{ID: u.ID, Username: u.Username})
	}
	return out
}
