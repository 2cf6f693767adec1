package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens(secret, time.Hour, nil)

	raw, rec, err := tokens.Issue(42)
	require.NoError(t, err)
	require.Equal(t, entities.UserID(42), rec.UserID)
	require.Equal(t, TokenName, rec.Name)
	require.True(t, rec.ExpiresAt.After(rec.CreatedAt))

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, entities.UserID(42), claims.UserID)
	require.Equal(t, rec.ID, claims.TokenID)
}

func TestTokensAreUnique(t *testing.T) {
	tokens := NewTokens(secret, time.Hour, nil)
	_, a, err := tokens.Issue(1)
	require.NoError(t, err)
	_, b, err := tokens.Issue(1)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	raw, _, err := NewTokens(strings.Repeat("x", 32), time.Hour, nil).Issue(1)
	require.NoError(t, err)

	_, err = NewTokens(secret, time.Hour, nil).Verify(raw)
	require.ErrorIs(t, err, entities.ErrUnauthenticated)
}

func TestVerifyRejectsExpired(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := NewTokens(secret, time.Hour, past).Issue(1)
	require.NoError(t, err)

	_, err = NewTokens(secret, time.Hour, nil).Verify(raw)
	require.ErrorIs(t, err, entities.ErrUnauthenticated)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewTokens(secret, time.Hour, nil).Verify("not-a-token")
	require.ErrorIs(t, err, entities.ErrUnauthenticated)
}

func TestPasswords(t *testing.T) {
	p := NewPasswords(4)
	hash, err := p.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.NoError(t, p.Check(hash, "s3cret"))
	require.ErrorIs(t, p.Check(hash, "wrong"), entities.ErrUnauthenticated)
}
