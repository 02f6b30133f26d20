package clouddb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// DB represents the cloud document database connection
type DB struct {
	*sql.DB
	logger *logrus.Logger
}

// Config represents cloud database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewDB creates a new cloud database connection and ensures the schema
func NewDB(config *Config, logger *logrus.Logger) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 接続をテスト
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 接続プールの設定
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	db := &DB{DB: sqlDB, logger: logger}

	if err := db.ensureSchema(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	logger.Info("クラウドデータベースに接続しました")
	return db, nil
}

// ensureSchema creates the document and user tables when missing.
// users/{userId}/{entityType} の名前空間を (user_id, collection) キーで表現する
func (db *DB) ensureSchema() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			user_id    TEXT NOT NULL,
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, collection, id)
		);
		CREATE INDEX IF NOT EXISTS idx_documents_created
			ON documents (user_id, collection, created_at);

		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			last_login_at TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// ForUser returns a per-user scoped backend over the document table
func (db *DB) ForUser(userID string) *Scope {
	return &Scope{db: db, userID: userID}
}

// Close closes the database connection
func (db *DB) Close() error {
	db.logger.Info("クラウドデータベース接続を閉じています")
	return db.DB.Close()
}

// Health checks database health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}
