package ports

import "context"

// AuthService checks the demo credentials and signs session tokens.
type AuthService interface {
	Verify(ctx context.Context, phone, password string) error
	IssueToken(sessionID string) (string, error)
	ParseToken(token string) (sessionID string, err error)
}
