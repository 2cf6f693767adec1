// Package domain contains application Usecases orchestrating domain logic by session.
package domain

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/k13lucien/Kollab/internal/entities"
)

const maxNameLen = 255

// Register creates an account and opens its first session.
func (u *Usecase) Register(ctx context.Context, in entities.Registration) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, entities.Invalid("password is required")
	}
	for field, v := range map[string]*string{"name": in.Name, "surname": in.Surname} {
		if v != nil && len(*v) > maxNameLen {
			return nil, entities.Invalid("%s is longer than %d characters", field, maxNameLen)
		}
	}
	username := optionalTrimmed(in.Username)

	hash, err := u.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.repo.CreateUser(ctx, entities.NewUser{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	return u.openSession(ctx, *user)
}

// Login checks credentials and opens a new session.
func (u *Usecase) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, entities.Invalid("email and password are required")
	}

	user, err := u.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrBadCredentials
		}
		return nil, err
	}
	if err := u.passwords.Check(user.PasswordHash, password); err != nil {
		u.log.Infow("login rejected", "user_id", user.ID)
		return nil, err
	}
	return u.openSession(ctx, *user)
}

// Authenticate resolves a bearer credential to its user. A credential whose
// row was deleted by Logout never authenticates again.
func (u *Usecase) Authenticate(ctx context.Context, token string) (entities.UserID, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if token == "" {
		return 0, entities.ErrUnauthenticated
	}
	claims, err := u.tokens.Verify(token)
	if err != nil {
		return 0, err
	}
	active, err := u.repo.TokenActive(ctx, claims.TokenID, claims.UserID, u.now())
	if err != nil {
		return 0, err
	}
	if !active {
		return 0, entities.ErrTokenRevoked
	}
	return claims.UserID, nil
}

// Logout revokes every credential the caller holds, not only the current one.
func (u *Usecase) Logout(ctx context.Context, caller entities.UserID) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	_, err := u.repo.DeleteUserTokens(ctx, caller)
	return err
}

// Profile returns the caller's account.
func (u *Usecase) Profile(ctx context.Context, caller entities.UserID) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.GetUser(ctx, caller)
}

// PruneExpiredTokens deletes credential rows past their expiry.
func (u *Usecase) PruneExpiredTokens(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	n, err := u.repo.DeleteExpiredTokens(ctx, u.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.log.Infow("expired tokens pruned", "count", n)
	}
	return n, nil
}

func (u *Usecase) openSession(ctx context.Context, user entities.User) (*entities.Session, error) {
	raw, rec, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	if err := u.repo.CreateToken(ctx, rec); err != nil {
		return nil, err
	}
	return &entities.Session{User: user, Token: raw}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", entities.Invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", entities.Invalid("email %q is not valid", raw)
	}
	return email, nil
}

func optionalTrimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
