package favorites

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore handles favorites persistence in a sqlite database
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens or creates the favorites database at the given path
func OpenSQLite(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		level TEXT NOT NULL,
		value TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (level, value)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// IsFavorite reports whether value is starred on level. Lookup failures are
// logged and treated as "not a favorite".
func (s *SQLiteStore) IsFavorite(level, value string) bool {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM favorites WHERE level = ? AND value = ?
	`, level, value).Scan(&n)
	if err != nil {
		s.logger.Warn("favorite lookup failed", "level", level, "value", value, "error", err)
		return false
	}
	return n > 0
}

// Add stars a value. Adding an existing favorite keeps its original time.
func (s *SQLiteStore) Add(level, value string) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO favorites (level, value, created_at)
		VALUES (?, ?, ?)
	`, level, value, time.Now())
	return err
}

// Remove unstars a value
func (s *SQLiteStore) Remove(level, value string) error {
	_, err := s.db.Exec(`DELETE FROM favorites WHERE level = ? AND value = ?`, level, value)
	return err
}

// List returns all favorites ordered by level, then value
func (s *SQLiteStore) List() ([]Favorite, error) {
	rows, err := s.db.Query(`
		SELECT level, value, created_at
		FROM favorites
		ORDER BY level, value
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.Level, &f.Value, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DefaultDBPath returns the default favorites database path
func DefaultDBPath() string {
	return filepath.Join(".hp", "favorites.db")
}
