// Package auth issues and verifies bearer credentials and hashes passwords.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	issuer = "kollab"
	// TokenName labels stored credentials.
	TokenName = "kollab_token"
)

// Claims is what a verified credential says about its holder.
type Claims struct {
	UserID  entities.UserID
	TokenID string
}

// Tokens signs HS256 JWTs whose jti points at a stored credential row.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokens constructs a signer; a nil clock means time.Now.
func NewTokens(secret string, ttl time.Duration, now func() time.Time) *Tokens {
	if now == nil {
		now = time.Now
	}
	return &Tokens{key: []byte(secret), ttl: ttl, now: now}
}

// Issue signs a new credential for userID and returns the row to persist.
func (t *Tokens) Issue(userID entities.UserID) (string, entities.AccessToken, error) {
	now := t.now().UTC().Truncate(time.Second)
	rec := entities.AccessToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      TokenName,
		CreatedAt: now,
		ExpiresAt: now.Add(t.ttl),
	}

	tok, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(strconv.FormatInt(userID, 10)).
		JwtID(rec.ID).
		IssuedAt(rec.CreatedAt).
		Expiration(rec.ExpiresAt).
		Build()
	if err != nil {
		return "", entities.AccessToken{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), t.key))
	if err != nil {
		return "", entities.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return string(signed), rec, nil
}

// Verify checks signature, issuer and expiry. It does not consult storage;
// revocation is checked by the caller against the returned TokenID.
func (t *Tokens) Verify(raw string) (Claims, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256(), t.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", entities.ErrUnauthenticated, err)
	}

	sub, ok := tok.Subject()
	if !ok {
		return Claims{}, fmt.Errorf("%w: missing subject", entities.ErrUnauthenticated)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", entities.ErrUnauthenticated)
	}
	jti, ok := tok.JwtID()
	if !ok || jti == "" {
		return Claims{}, fmt.Errorf("%w: missing token id", entities.ErrUnauthenticated)
	}
	return Claims{UserID: userID, TokenID: jti}, nil
}
