package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"msgtiers/internal/config"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// Open connects to the database selected by dbType using the matching entry
// from the config.
func Open(dbType string, cfg *config.Config) (*sql.DB, error) {
	dbCfg, ok := cfg.Databases[dbType]
	if !ok {
		return nil, fmt.Errorf("database config for %s not found", dbType)
	}

	var (
		db  *sql.DB
		err error
	)

	switch strings.ToLower(dbType) {
	case "sqlite", "sqlite3":
		if dbCfg.DSN == "" {
			return nil, fmt.Errorf("sqlite dsn must be provided")
		}
		db, err = sql.Open("sqlite3", dbCfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	case "mysql":
		params := dbCfg.Params
		if params == "" {
			params = "parseTime=true"
		} else if !strings.Contains(params, "parseTime") {
			params += "&parseTime=true"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.Username,
			dbCfg.Password,
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.DBName,
			params,
		)
		db, err = sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("open mysql database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", dbType)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate ensures the required tables are present.
func Migrate(db *sql.DB, driver string) error {
	var stmts []string
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS messages (
				message_id INTEGER PRIMARY KEY AUTOINCREMENT,
				sender_id TEXT NOT NULL,
				receiver_id TEXT NOT NULL,
				message_text TEXT NOT NULL,
				timestamp DATETIME NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS users (
				user_id TEXT PRIMARY KEY,
				password TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages(sender_id, receiver_id)`,
			`CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp)`,
		}
	case "mysql":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS messages (
				message_id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
				sender_id VARCHAR(255) NOT NULL,
				receiver_id VARCHAR(255) NOT NULL,
				message_text MEDIUMTEXT NOT NULL,
				timestamp DATETIME NOT NULL,
				PRIMARY KEY (message_id),
				INDEX idx_messages_pair (sender_id, receiver_id),
				INDEX idx_messages_timestamp (timestamp)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS users (
				user_id VARCHAR(255) NOT NULL,
				password VARCHAR(255) NOT NULL,
				PRIMARY KEY (user_id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		}
	default:
		return fmt.Errorf("unsupported driver for migration: %s", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate (%s): %w", driver, err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique or primary key constraint
// violation from either supported driver. The registration path relies on
// this to turn a raw INSERT into an atomic insert-if-absent.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

// Version returns the server version string for the given driver.
func Version(ctx context.Context, db *sql.DB, driver string) (string, error) {
	var query string
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		query = `SELECT sqlite_version()`
	case "mysql":
		query = `SELECT VERSION()`
	default:
		return "", fmt.Errorf("unsupported driver: %s", driver)
	}
	var version string
	if err := db.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return "", fmt.Errorf("query version: %w", err)
	}
	return version, nil
}
