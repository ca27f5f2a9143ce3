package db

import (
	"database/sql"
	"fmt"

	"tuition-payments/config"

	_ "github.com/lib/pq"
)

// Store wraps the shared database handle. It is opened once at startup,
// passed explicitly to whoever needs it and closed at shutdown.
type Store struct {
	db *sql.DB
}

func Open() (*Store, error) {
	connStr := config.GetDBConnString()

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	s := &Store{db: conn}

	// Create tables
	if err := s.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	paymentTable := `
	CREATE TABLE IF NOT EXISTS student_payments (
		id SERIAL PRIMARY KEY,
		transaction_id TEXT UNIQUE,
		student_id TEXT,
		student_name TEXT,
		student_email TEXT,
		semester TEXT,
		amount NUMERIC(12,2),
		breakdown JSONB,
		status TEXT,
		raw_doc JSONB,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := s.db.Exec(paymentTable); err != nil {
		return fmt.Errorf("error creating student_payments table: %w", err)
	}

	return nil
}
