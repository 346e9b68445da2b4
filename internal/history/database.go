// Package history records every run and its case results in MySQL so drift
// of the external service can be followed across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// schema is applied by Migrate; statements are idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		started_at DATETIME(3) NOT NULL,
		endpoint VARCHAR(512) NOT NULL,
		settle_strategy VARCHAR(32) NOT NULL,
		workers INT NOT NULL,
		total_cases INT NOT NULL,
		passed_cases INT NOT NULL,
		duration_ms BIGINT NOT NULL
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,
	`CREATE TABLE IF NOT EXISTS case_results (
		run_id VARCHAR(36) NOT NULL,
		position INT NOT NULL,
		label VARCHAR(255) NOT NULL,
		kind VARCHAR(32) NOT NULL,
		passed BOOLEAN NOT NULL,
		found BOOLEAN NOT NULL,
		expected MEDIUMTEXT NOT NULL,
		candidate MEDIUMTEXT NOT NULL,
		error TEXT NULL,
		duration_ms BIGINT NOT NULL,
		PRIMARY KEY (run_id, position),
		KEY idx_case_results_label (label),
		CONSTRAINT fk_case_results_run FOREIGN KEY (run_id) REFERENCES runs (id) ON DELETE CASCADE
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,
}

// DatabaseManager creates the history database and its tables
type DatabaseManager struct {
	dsn string
}

// NewDatabaseManager creates a new DatabaseManager for a MySQL DSN
func NewDatabaseManager(dsn string) *DatabaseManager {
	return &DatabaseManager{dsn: dsn}
}

// Migrate creates the database named in the DSN if needed, then the tables
func (dm *DatabaseManager) Migrate(ctx context.Context) error {
	cfg, err := ParseDSN(dm.dsn)
	if err != nil {
		return err
	}
	dbName := cfg.DBName
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %q", dbName)
	}

	// Connect to MySQL server (without specifying database)
	server := cfg.Clone()
	server.DBName = ""
	db, err := sql.Open("mysql", server.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, dbName)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if !exists {
		query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_bin", dbName)
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create database %s: %w", dbName, err)
		}
	}

	target, err := Open(dm.dsn)
	if err != nil {
		return err
	}
	defer target.Close()

	for _, stmt := range schema {
		if _, err := target.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// ParseDSN parses a MySQL DSN and enables the options the history tables need
func ParseDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse history dsn: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("history dsn must name a database")
	}
	cfg.ParseTime = true
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg, nil
}

// Open connects to the history database
func Open(dsn string) (*sql.DB, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	return db, nil
}

// databaseExists checks if a database exists
func databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// isValidDatabaseName only allows names that are safe inside backticks
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
		default:
			return false
		}
	}
	return !strings.HasPrefix(name, "$")
}
