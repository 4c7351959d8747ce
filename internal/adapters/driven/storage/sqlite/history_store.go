package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docsight-labs/docsight-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docsight-labs/docsight-cli/internal/core/domain"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists question/answer exchanges in SQLite.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore creates a SQLite history store at the specified data
// directory. If dataDir is empty, defaults to ~/.docsight/data/history.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docsight", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &HistoryStore{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}

// SaveExchange stores one question/answer exchange.
func (s *HistoryStore) SaveExchange(ctx context.Context, exchange *domain.Exchange) error {
	if exchange.ID == "" || exchange.Question == "" {
		return domain.ErrInvalidInput
	}

	citationsJSON, err := json.Marshal(exchange.Answer.Citations)
	if err != nil {
		return fmt.Errorf("marshalling citations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, question, answer, citations, context_used, processing_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, exchange.ID, exchange.Question, exchange.Answer.Text, string(citationsJSON),
		exchange.Answer.ContextUsed, exchange.Answer.ProcessingTime, exchange.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving exchange: %w", err)
	}
	return nil
}

// ListExchanges returns the most recent exchanges, newest first. A limit of
// zero or less returns everything.
func (s *HistoryStore) ListExchanges(ctx context.Context, limit int) ([]domain.Exchange, error) {
	query := `
		SELECT id, question, answer, citations, context_used, processing_time, created_at
		FROM exchanges
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []domain.Exchange //nolint:prealloc // size unknown from query
	for rows.Next() {
		var exchange domain.Exchange
		var citationsJSON string
		if err := rows.Scan(&exchange.ID, &exchange.Question, &exchange.Answer.Text,
			&citationsJSON, &exchange.Answer.ContextUsed, &exchange.Answer.ProcessingTime,
			&exchange.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exchange: %w", err)
		}

		if err := json.Unmarshal([]byte(citationsJSON), &exchange.Answer.Citations); err != nil {
			return nil, fmt.Errorf("unmarshalling citations: %w", err)
		}

		exchanges = append(exchanges, exchange)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exchanges: %w", err)
	}

	return exchanges, nil
}

// migrate runs all pending migrations.
func (s *HistoryStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
