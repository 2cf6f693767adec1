// Package sqlite implements the repository on an embedded SQLite file via gorm.
//
// The schema carries no foreign keys; cascades and the leader guard are
// performed inside transactions instead.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/k13lucien/Kollab/config"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLite wraps a gorm handle.
type SQLite struct {
	log *zap.SugaredLogger
	db  *gorm.DB
	dsn string
}

// New creates a SQLite repository instance.
func New(log *zap.SugaredLogger, cfg *config.Config) *SQLite {
	return &SQLite{
		log: log.Named("repo.sqlite"),
		dsn: cfg.SQLite.DSN,
	}
}

// OnStart opens the database and migrates the schema.
func (s *SQLite) OnStart(ctx context.Context) error {
	if err := ensureDirForSQLite(s.dsn); err != nil {
		return err
	}

	db, err := gorm.Open(sqlite.Open(s.dsn), &gorm.Config{
		Logger: logger.New(gormWriter{log: s.log}, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}
	// one writer; also keeps every statement on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	s.db = db
	if err := s.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return err
	}

	s.log.Infow("sqlite ready", "dsn", s.dsn)
	return nil
}

// Migrate brings the schema up to date.
func (s *SQLite) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&userModel{}, &tokenModel{}, &teamModel{}, &teamMemberModel{}, &projectModel{}, &taskModel{},
	); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

// OnStop closes the database.
func (s *SQLite) OnStop(_ context.Context) error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
