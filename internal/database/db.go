package database

import (
	"context"
	"database/sql"
	_ "embed"
	"time"
)

//go:embed schema.sql
var schema string

func OpenConnection(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the embedded DDL. Every statement is idempotent so this
// is safe to run on each start.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
