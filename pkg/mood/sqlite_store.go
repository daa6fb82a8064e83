package mood

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore 基于 SQLite 的情绪存储
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens or creates the SQLite database and applies migrations.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Printf("[SQLiteStore] Warning: failed to close db after migration error: %v", cerr)
		}
		return nil, fmt.Errorf("failed to migrate db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS moods (
			id INTEGER PRIMARY KEY,
			emoji TEXT NOT NULL,
			text TEXT NOT NULL,
			date TEXT NOT NULL,
			color TEXT NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_moods_date ON moods(date);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load 按保存顺序（自增 id）返回全部记录
func (s *SQLiteStore) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT emoji, text, date, color FROM moods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Printf("[SQLiteStore] Warning: failed to close mood rows: %v", cerr)
		}
	}()

	records := make([]Record, 0)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Emoji, &r.Text, &r.Date, &r.Color); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read moods: %w", err)
	}
	return records, nil
}

// Append 追加一条记录
func (s *SQLiteStore) Append(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moods (emoji, text, date, color, saved_at) VALUES (?, ?, ?, ?, ?)`,
		r.Emoji, r.Text, r.Date, r.Color, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert mood: %w", err)
	}
	return nil
}

// Clear 删除全部记录
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM moods`); err != nil {
		return fmt.Errorf("failed to clear moods: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
