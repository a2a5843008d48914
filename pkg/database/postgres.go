package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tair/storefront/pkg/config"
	"github.com/tair/storefront/pkg/logger"
)

// NewPostgresConnection creates a new PostgreSQL connection
func NewPostgresConnection(cfg config.Database) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Msg("Connected to PostgreSQL database")
	return db, nil
}

// NewGormConnection opens a gorm handle for the configured driver.
// Postgres connections go through lib/pq; sqlite is meant for local runs.
func NewGormConnection(cfg config.Database) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         NewGormLogger(200 * time.Millisecond),
		TranslateError: true,
	}

	switch cfg.Driver {
	case "postgres":
		sqlDB, err := NewPostgresConnection(cfg)
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to open gorm: %w", err)
		}
		return db, nil
	case "sqlite":
		return OpenSQLite(cfg.Path, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens a sqlite database. SQLite allows a single writer, so the
// pool is pinned to one connection.
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{
			Logger:         NewGormLogger(200 * time.Millisecond),
			TranslateError: true,
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logger.Logger.Info().Str("path", path).Msg("Opened SQLite database")
	return db, nil
}
