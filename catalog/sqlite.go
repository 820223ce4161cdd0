package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists species as JSON payloads in a SQLite database.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// OpenSQLiteStore opens the database at path and creates the schema.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS species (
			id TEXT PRIMARY KEY,
			letter TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			payload BLOB NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create species table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errClosed
	}
	return s.db, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sp Species) error {
	if sp.ID == "" {
		return errors.New("catalog: species id is required")
	}
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := encode(sp)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO species (id, letter, created_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			letter = excluded.letter,
			created_at = excluded.created_at,
			payload = excluded.payload
	`, sp.ID, sp.Letter, sp.Timestamp.UnixNano(), payload)
	if err != nil {
		return fmt.Errorf("save species %s: %w", sp.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Species, error) {
	db, err := s.getDB()
	if err != nil {
		return Species{}, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM species WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Species{}, ErrNotFound
		}
		return Species{}, fmt.Errorf("get species %s: %w", id, err)
	}
	return decode(payload)
}

// List returns every species, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Species, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT payload FROM species ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	defer rows.Close()

	var out []Species
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan species: %w", err)
		}
		sp, err := decode(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
