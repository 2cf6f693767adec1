package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	userColumns     = `id, name, surname, email, username, password_hash, created_at, updated_at`
	insertUserQuery = `
INSERT INTO users(name, surname, email, username, password_hash)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns
	selectUserQuery        = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	selectUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email=$1`

	insertTokenQuery        = `INSERT INTO access_tokens(id, user_id, name, expires_at) VALUES ($1, $2, $3, $4)`
	tokenActiveQuery        = `SELECT EXISTS (SELECT 1 FROM access_tokens WHERE id=$1 AND user_id=$2 AND expires_at > $3)`
	deleteUserTokensQuery   = `DELETE FROM access_tokens WHERE user_id=$1`
	deleteExpiredTokenQuery = `DELETE FROM access_tokens WHERE expires_at <= $1`
)

// CreateUser registers a user; duplicate email or username yields a conflict.
func (p *Postgres) CreateUser(ctx context.Context, in entities.NewUser) (*entities.User, error) {
	row := p.db.QueryRow(ctx, insertUserQuery, in.Name, in.Surname, in.Email, in.Username, in.PasswordHash)
	u, err := scanUser(row)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == codeUniqueViolation {
			if constraint == "users_username_key" {
				return nil, entities.ErrUsernameTaken
			}
			return nil, entities.ErrEmailTaken
		}
		p.log.Errorw("failed to insert user", "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user registered", "user_id", u.ID)
	return u, nil
}

// GetUser fetches a user by id.
func (p *Postgres) GetUser(ctx context.Context, id entities.UserID) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches a user by email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, err := scanUser(p.db.QueryRow(ctx, selectUserByEmailQuery, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// CreateToken stores an issued credential.
func (p *Postgres) CreateToken(ctx context.Context, t entities.AccessToken) error {
	if _, err := p.db.Exec(ctx, insertTokenQuery, t.ID, t.UserID, t.Name, t.ExpiresAt); err != nil {
		p.log.Errorw("failed to insert token", "error", err, "user_id", t.UserID)
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// TokenActive reports whether the credential row exists, belongs to userID and is unexpired.
func (p *Postgres) TokenActive(ctx context.Context, id string, userID entities.UserID, now time.Time) (bool, error) {
	var ok bool
	if err := p.db.QueryRow(ctx, tokenActiveQuery, id, userID, now).Scan(&ok); err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return ok, nil
}

// DeleteUserTokens revokes every credential of the user in one statement.
func (p *Postgres) DeleteUserTokens(ctx context.Context, userID entities.UserID) (int64, error) {
	tag, err := p.db.Exec(ctx, deleteUserTokensQuery, userID)
	if err != nil {
		p.log.Errorw("failed to revoke tokens", "error", err, "user_id", userID)
		return 0, fmt.Errorf("delete user tokens: %w", err)
	}
	p.log.Infow("tokens revoked", "user_id", userID, "count", tag.RowsAffected())
	return tag.RowsAffected(), nil
}

// DeleteExpiredTokens removes credentials that expired at or before now.
func (p *Postgres) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, deleteExpiredTokenQuery, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	if err := row.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
