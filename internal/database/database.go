package database

import (
	"database/sql"
	"fmt"
	"os"

	"stocktrack_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var DB *sql.DB

// InitDB opens the connection pool and optionally applies the schema
// file when a path is provided.
func InitDB(host, port, user, password, dbname, sslmode, dbSchemaPath string) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	utils.LogInfo("Successfully connected to the database")

	if err = applySchema(DB, dbSchemaPath); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}
	return nil
}

// applySchema reads and executes the schema file. Statements use
// IF NOT EXISTS so reapplying is harmless.
func applySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		utils.LogDebug("No schema path provided, skipping schema application")
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err = db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied", map[string]interface{}{"path": schemaPath})
	return nil
}

// GetDB returns the database connection pool
func GetDB() *sql.DB {
	return DB
}
