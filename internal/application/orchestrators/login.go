package orchestrators

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrInvalidCredentials is returned when the login form is incomplete.
var ErrInvalidCredentials = errors.New("Please enter both username and password.")

// LoginInput carries the login form values.
type LoginInput struct {
	Username string
	Password string
}

// ExecuteLogin is the placeholder login: any non-empty username and password
// are accepted. No credential is stored or checked against a backend.
// PRE: none
// POST: Returns the trimmed username or ErrInvalidCredentials
func ExecuteLogin(input LoginInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		slog.Info("auth_event", "event", "login_rejected", "reason", "missing_fields")
		return "", ErrInvalidCredentials
	}
	slog.Info("auth_event", "event", "login_success", "username", username)
	return username, nil
}
