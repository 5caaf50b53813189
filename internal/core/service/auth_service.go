package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

const sessionClaim = "sid"

// AuthService implements the demo login and session tokens.
type AuthService struct {
	phone        string
	passwordHash []byte
	jwtSecret    string
	tokenTTL     time.Duration
}

// NewAuthService hashes the demo password once so that logins compare against a
// bcrypt digest rather than the plain value.
func NewAuthService(phone, password, jwtSecret string, tokenTTL time.Duration) (*AuthService, error) {
	if phone == "" || password == "" {
		return nil, fmt.Errorf("auth service: demo credentials are required")
	}
	if jwtSecret == "" {
		return nil, fmt.Errorf("auth service: session secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: hash demo password: %w", err)
	}
	return &AuthService{phone: phone, passwordHash: hash, jwtSecret: jwtSecret, tokenTTL: tokenTTL}, nil
}

// Verify accepts only the demo phone and password.
func (s *AuthService) Verify(_ context.Context, phone, password string) error {
	if phone == "" || password == "" || phone != s.phone {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs a token bound to sessionID.
func (s *AuthService) IssueToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		sessionClaim: sessionID,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ParseToken validates a session token and returns its session id.
func (s *AuthService) ParseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", errors.Join(domain.ErrSessionNotFound, err)
	}
	sid, _ := claims[sessionClaim].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
