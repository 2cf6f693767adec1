package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k13lucien/Kollab/internal/entities"

	"gorm.io/gorm"
)

// CreateUser registers a user; duplicate email or username yields a conflict.
func (s *SQLite) CreateUser(ctx context.Context, in entities.NewUser) (*entities.User, error) {
	m := userModel{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := exists(tx.Model(&userModel{}).Where("email = ?", in.Email)); err != nil {
			return err
		} else if taken {
			return entities.ErrEmailTaken
		}
		if in.Username != nil {
			if taken, err := exists(tx.Model(&userModel{}).Where("username = ?", *in.Username)); err != nil {
				return err
			} else if taken {
				return entities.ErrUsernameTaken
			}
		}
		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entities.ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			return nil, err
		}
		s.log.Errorw("failed to insert user", "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.log.Infow("user registered", "user_id", m.ID)
	u := m.toEntity()
	return &u, nil
}

// GetUser fetches a user by id.
func (s *SQLite) GetUser(ctx context.Context, id entities.UserID) (*entities.User, error) {
	var m userModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u := m.toEntity()
	return &u, nil
}

// GetUserByEmail fetches a user by email.
func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m userModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	u := m.toEntity()
	return &u, nil
}

// CreateToken stores an issued credential.
func (s *SQLite) CreateToken(ctx context.Context, t entities.AccessToken) error {
	m := tokenModel{ID: t.ID, UserID: t.UserID, Name: t.Name, CreatedAt: t.CreatedAt.UTC(), ExpiresAt: t.ExpiresAt.UTC()}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		s.log.Errorw("failed to insert token", "error", err, "user_id", t.UserID)
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// TokenActive reports whether the credential row exists, belongs to userID and is unexpired.
func (s *SQLite) TokenActive(ctx context.Context, id string, userID entities.UserID, now time.Time) (bool, error) {
	ok, err := exists(s.db.WithContext(ctx).Model(&tokenModel{}).
		Where("id = ? AND user_id = ? AND expires_at > ?", id, userID, now.UTC()))
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return ok, nil
}

// DeleteUserTokens revokes every credential of the user in one statement.
func (s *SQLite) DeleteUserTokens(ctx context.Context, userID entities.UserID) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&tokenModel{})
	if res.Error != nil {
		s.log.Errorw("failed to revoke tokens", "error", res.Error, "user_id", userID)
		return 0, fmt.Errorf("delete user tokens: %w", res.Error)
	}
	s.log.Infow("tokens revoked", "user_id", userID, "count", res.RowsAffected)
	return res.RowsAffected, nil
}

// DeleteExpiredTokens removes credentials that expired at or before now.
func (s *SQLite) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&tokenModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func exists(q *gorm.DB) (bool, error) {
	var n int64
	if err := q.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
