package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/binance_dashboard/internal/domain"
)

// The goal document lives in a single row and is replaced wholesale on every
// write. Last writer wins; this is operator-maintained single-user state.
const goalRowID = 1

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS goal (
		id INTEGER PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to exec query %s: %w", query, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GoalRepository Implementation

// Get returns the stored goal document. Absence and read failures both
// degrade to the default document; a missing goal must never fail the page.
func (s *SQLiteStore) Get(ctx context.Context) (*domain.GoalDocument, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM goal WHERE id = ?", goalRowID).Scan(&data)
	if err != nil {
		return domain.DefaultGoalDocument(), nil
	}

	var doc domain.GoalDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return domain.DefaultGoalDocument(), nil
	}
	if doc.CompletedTrades == nil {
		doc.CompletedTrades = []domain.CompletedTrade{}
	}
	return &doc, nil
}

// Set replaces the whole document and stamps a fresh updatedAt.
func (s *SQLiteStore) Set(ctx context.Context, doc *domain.GoalDocument) error {
	doc.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if doc.CompletedTrades == nil {
		doc.CompletedTrades = []domain.CompletedTrade{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	query := `INSERT INTO goal (id, data, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`
	_, err = s.db.ExecContext(ctx, query, goalRowID, string(data), doc.UpdatedAt)
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM goal WHERE id = ?", goalRowID)
	return err
}
