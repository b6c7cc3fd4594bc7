package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mevzuat-labs/mevzuat-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// article and history store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.mevzuat/data/mevzuat.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".mevzuat", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "mevzuat.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
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
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ArticleStore returns an ArticleStore interface backed by this store.
func (s *Store) ArticleStore() driven.ArticleStore {
	return &articleStore{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
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

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Article Store ====================

// articleStore implements driven.ArticleStore.
type articleStore struct {
	store *Store
}

var _ driven.ArticleStore = (*articleStore)(nil)

// articleColumns is the SELECT list shared by SearchArticles and
// GetArticle, in driven.ArticleRow field order.
const articleColumns = `
	a.id, a.document_id, a.article_number, a.title, a.content,
	a.is_repealed, a.is_amended,
	d.title AS document_title, d.law_number, d.document_type`

// SearchArticles executes an FTS5 MATCH and returns rows ordered by the
// engine's rank, best first. The bm25 rank is negative (more negative is
// better); it is negated here so callers see a non-negative,
// higher-is-better score.
func (s *articleStore) SearchArticles(
	ctx context.Context, ftsQuery string, docTypes []domain.DocumentType, limit int,
) ([]driven.ArticleRow, error) {
	query := `
		SELECT ` + articleColumns + `, articles_fts.rank
		FROM articles_fts
		JOIN articles a ON a.id = articles_fts.rowid
		JOIN documents d ON d.id = a.document_id
		WHERE articles_fts MATCH ?`

	args := []any{ftsQuery}

	if len(docTypes) > 0 {
		placeholders := strings.Repeat("?, ", len(docTypes))
		query += " AND d.document_type IN (" + placeholders[:len(placeholders)-2] + ")"
		for _, t := range docTypes {
			args = append(args, string(t))
		}
	}

	query += " ORDER BY articles_fts.rank LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles_fts: %w", err)
	}
	defer rows.Close()

	var results []driven.ArticleRow //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r driven.ArticleRow
		var number, title, lawNumber sql.NullString
		var rank float64
		if err := rows.Scan(&r.ArticleID, &r.DocumentID, &number, &title, &r.Content,
			&r.IsRepealed, &r.IsAmended, &r.DocumentTitle, &lawNumber, &r.DocumentType, &rank); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		r.ArticleNumber = number.String
		r.Title = title.String
		r.LawNumber = lawNumber.String
		r.Rank = -rank
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search rows: %w", err)
	}

	return results, nil
}

// GetArticle returns an article joined with its parent document.
func (s *articleStore) GetArticle(ctx context.Context, id int64) (*driven.ArticleRow, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		JOIN documents d ON d.id = a.document_id
		WHERE a.id = ?
	`, id)

	var r driven.ArticleRow
	var number, title, lawNumber sql.NullString
	if err := row.Scan(&r.ArticleID, &r.DocumentID, &number, &title, &r.Content,
		&r.IsRepealed, &r.IsAmended, &r.DocumentTitle, &lawNumber, &r.DocumentType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}
	r.ArticleNumber = number.String
	r.Title = title.String
	r.LawNumber = lawNumber.String
	return &r, nil
}

// SaveDocument inserts a document, enforcing content-hash uniqueness.
func (s *articleStore) SaveDocument(ctx context.Context, doc *domain.Document) (int64, error) {
	if doc.FileHash != "" {
		var existing int64
		err := s.store.db.QueryRowContext(ctx,
			"SELECT id FROM documents WHERE file_hash = ?", doc.FileHash).Scan(&existing)
		switch {
		case err == nil:
			return 0, domain.ErrDuplicateDocument
		case !errors.Is(err, sql.ErrNoRows):
			return 0, fmt.Errorf("checking document hash: %w", err)
		}
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	if doc.Status == "" {
		doc.Status = "ACTIVE"
	}
	if doc.Version == 0 {
		doc.Version = 1
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (title, law_number, document_type, category, subcategory,
			file_path, stored_filename, file_hash, status, version_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.Title, nullString(doc.LawNumber), string(doc.Type), nullString(doc.Category),
		nullString(doc.Subcategory), doc.FilePath, doc.StoredFilename,
		nullString(doc.FileHash), doc.Status, doc.Version, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("saving document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading document id: %w", err)
	}
	doc.ID = id
	return id, nil
}

// SaveArticles inserts a document's articles in one transaction. The FTS
// index is kept in sync by triggers.
func (s *articleStore) SaveArticles(ctx context.Context, articles []domain.Article) ([]int64, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (document_id, article_number, title, content, content_clean,
			content_search, seq_index, is_repealed, is_amended, amendment_note,
			article_kind, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	ids := make([]int64, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		if a.Kind == "" {
			a.Kind = "MADDE"
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		a.UpdatedAt = now

		res, err := stmt.ExecContext(ctx, a.DocumentID, nullString(a.Number), nullString(a.Title),
			a.Content, a.ContentClean, a.ContentSearch, a.SeqIndex,
			a.IsRepealed, a.IsAmended, nullString(a.AmendmentNote), a.Kind, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("saving article %d: %w", i, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading article id: %w", err)
		}
		a.ID = id
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return ids, nil
}

// DeleteDocument removes a document; articles cascade via the foreign key.
func (s *articleStore) DeleteDocument(ctx context.Context, id int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ArticlesForIndexing returns semantic-index training input: each article
// with cleaned-or-raw content longer than minLength characters.
func (s *articleStore) ArticlesForIndexing(ctx context.Context, minLength int) ([]domain.IndexDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, COALESCE(NULLIF(TRIM(content_clean), ''), content)
		FROM articles
		WHERE content IS NOT NULL
		AND LENGTH(TRIM(COALESCE(content_clean, content))) > ?
		ORDER BY id
	`, minLength)
	if err != nil {
		return nil, fmt.Errorf("querying articles for indexing: %w", err)
	}
	defer rows.Close()

	var docs []domain.IndexDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var d domain.IndexDocument
		if err := rows.Scan(&d.ArticleID, &d.Content); err != nil {
			return nil, fmt.Errorf("scanning index document: %w", err)
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating index documents: %w", err)
	}
	return docs, nil
}

// Close closes the underlying store.
func (s *articleStore) Close() error {
	return s.store.Close()
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Add appends one history entry.
func (s *historyStore) Add(ctx context.Context, entry domain.HistoryEntry) error {
	createdAt := entry.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO search_history (query, query_type, results_count, execution_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.Query, string(entry.QueryType), entry.ResultCount, entry.ElapsedMS, createdAt)
	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// Recent returns the most recent n entries, newest first.
func (s *historyStore) Recent(ctx context.Context, n int) ([]domain.HistoryEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query, query_type, results_count, COALESCE(execution_time_ms, 0), created_at
		FROM search_history
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.HistoryEntry
		var queryType string
		if err := rows.Scan(&e.ID, &e.Query, &queryType, &e.ResultCount, &e.ElapsedMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.QueryType = domain.SearchType(queryType)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history entries: %w", err)
	}
	return entries, nil
}

// MatchQueries returns distinct prior queries containing the fragment,
// newest first.
func (s *historyStore) MatchQueries(ctx context.Context, fragment string, limit int) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT query
		FROM search_history
		WHERE LOWER(query) LIKE '%' || LOWER(?) || '%'
		GROUP BY query
		ORDER BY MAX(id) DESC
		LIMIT ?
	`, fragment, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history matches: %w", err)
	}
	defer rows.Close()

	var queries []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scanning history match: %w", err)
		}
		queries = append(queries, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history matches: %w", err)
	}
	return queries, nil
}

// Stats aggregates search_history counts and timings.
func (s *historyStore) Stats(ctx context.Context) (domain.HistoryStats, error) {
	stats := domain.HistoryStats{TypeCounts: make(map[domain.SearchType]int)}

	row := s.store.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(execution_time_ms), 0),
		       COALESCE(MIN(execution_time_ms), 0),
		       COALESCE(MAX(execution_time_ms), 0)
		FROM search_history
	`)
	if err := row.Scan(&stats.TotalSearches, &stats.AvgElapsedMS, &stats.MinElapsedMS, &stats.MaxElapsedMS); err != nil {
		return stats, fmt.Errorf("scanning history stats: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT query_type, COUNT(*)
		FROM search_history
		GROUP BY query_type
	`)
	if err != nil {
		return stats, fmt.Errorf("querying history type counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var queryType string
		var count int
		if err := rows.Scan(&queryType, &count); err != nil {
			return stats, fmt.Errorf("scanning history type count: %w", err)
		}
		stats.TypeCounts[domain.SearchType(queryType)] = count
	}

	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating history type counts: %w", err)
	}
	return stats, nil
}

// nullString converts empty strings to NULL for optional columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
