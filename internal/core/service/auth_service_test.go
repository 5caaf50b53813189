package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
)

func TestAuthService_Verify(t *testing.T) {
	svc, err := NewAuthService("01412345678", "12345", "secret", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, svc.Verify(ctx, "01412345678", "12345"))
	assert.ErrorIs(t, svc.Verify(ctx, "01412345678", "54321"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Verify(ctx, "01800000000", "12345"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Verify(ctx, "", ""), domain.ErrInvalidCredentials)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, err := NewAuthService("01412345678", "12345", "secret", time.Hour)
	require.NoError(t, err)

	tok, err := svc.IssueToken("sess-42")
	require.NoError(t, err)
	sid, err := svc.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", sid)
}

func TestAuthService_RejectsForeignToken(t *testing.T) {
	a, err := NewAuthService("01412345678", "12345", "secret-a", time.Hour)
	require.NoError(t, err)
	b, err := NewAuthService("01412345678", "12345", "secret-b", time.Hour)
	require.NoError(t, err)

	tok, err := a.IssueToken("sess-42")
	require.NoError(t, err)
	_, err = b.ParseToken(tok)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = a.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService("01412345678", "12345", "", time.Hour)
	assert.Error(t, err)
}
