package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	branchID := int64(4)
	identity := shared.Identity{UserID: 7, Email: "admin@example.com", Role: "Super Admin", BranchID: &branchID}

	token, err := issuer.Issue(identity)
	require.NoError(t, err)

	decoded, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, identity, decoded)
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue(shared.Identity{UserID: 1, Email: "a@b.c", Role: "Teacher"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Verify(token)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.Issue(shared.Identity{UserID: 1, Email: "a@b.c", Role: "Teacher"})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret", time.Hour).Verify("not.a.token")
	require.ErrorIs(t, err, shared.ErrUnauthorized)
}
