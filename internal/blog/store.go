package blog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/neuroblog/neuroblog/pkg/storage"
)

// Schema is the SQLite schema for suggestions and posts.
const Schema = `
CREATE TABLE IF NOT EXISTS suggestions (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL,
    summary      TEXT NOT NULL,
    tags         TEXT,
    category     TEXT,
    source       TEXT NOT NULL,
    news_url     TEXT,
    unique_id    TEXT,
    images       TEXT,
    read_time    TEXT,
    publish_date TEXT,
    status       TEXT NOT NULL DEFAULT 'pending',
    admin_notes  TEXT,
    generated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    approved_at  TIMESTAMP,
    published_at TIMESTAMP,
    post_id      INTEGER
);

CREATE TABLE IF NOT EXISTS posts (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    title        TEXT NOT NULL,
    body         TEXT NOT NULL,
    summary      TEXT,
    tags         TEXT,
    status       TEXT NOT NULL DEFAULT 'draft',
    author_id    INTEGER NOT NULL,
    news_source  TEXT,
    read_time    TEXT,
    publish_date TEXT,
    created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_suggestions_status ON suggestions(status, generated_at);
CREATE INDEX IF NOT EXISTS idx_suggestions_title ON suggestions(title);
CREATE INDEX IF NOT EXISTS idx_posts_title ON posts(title);
CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at);
`

// Store provides suggestion and post persistence.
type Store struct {
	db *storage.DB
}

// NewStore creates a new blog store.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db}
}

// CreateSuggestion inserts a new pending suggestion and fills in its id.
func (s *Store) CreateSuggestion(ctx context.Context, sug *Suggestion) error {
	if sug.Status == "" {
		sug.Status = StatusPending
	}
	if sug.GeneratedAt.IsZero() {
		sug.GeneratedAt = time.Now().UTC()
	}
	tags, _ := json.Marshal(sug.Tags)
	imgs, _ := json.Marshal(sug.Images)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestions
			(title, content, summary, tags, category, source, news_url, unique_id,
			 images, read_time, publish_date, status, admin_notes, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sug.Title, sug.Content, sug.Summary, string(tags), sug.Category, sug.Source,
		sug.NewsURL, sug.UniqueID, string(imgs), sug.ReadTime, sug.PublishDate,
		sug.Status, sug.AdminNotes, sug.GeneratedAt)
	if err != nil {
		return fmt.Errorf("create suggestion: %w", err)
	}
	id, _ := res.LastInsertId()
	sug.ID = id
	return nil
}

const suggestionColumns = `id, title, content, summary, tags, category, source,
	news_url, unique_id, images, read_time, publish_date, status, admin_notes,
	generated_at, approved_at, published_at, post_id`

func scanSuggestion(row interface{ Scan(...any) error }) (*Suggestion, error) {
	var (
		sug                     Suggestion
		tags, imgs              sql.NullString
		category, newsURL       sql.NullString
		uniqueID, readTime      sql.NullString
		publishDate, notes      sql.NullString
		approvedAt, publishedAt sql.NullTime
		postID                  sql.NullInt64
	)
	err := row.Scan(&sug.ID, &sug.Title, &sug.Content, &sug.Summary, &tags,
		&category, &sug.Source, &newsURL, &uniqueID, &imgs, &readTime,
		&publishDate, &sug.Status, &notes, &sug.GeneratedAt,
		&approvedAt, &publishedAt, &postID)
	if err != nil {
		return nil, err
	}
	sug.Category = category.String
	sug.NewsURL = newsURL.String
	sug.UniqueID = uniqueID.String
	sug.ReadTime = readTime.String
	sug.PublishDate = publishDate.String
	sug.AdminNotes = notes.String
	if tags.Valid {
		json.Unmarshal([]byte(tags.String), &sug.Tags)
	}
	if imgs.Valid {
		json.Unmarshal([]byte(imgs.String), &sug.Images)
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		sug.ApprovedAt = &t
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		sug.PublishedAt = &t
	}
	if postID.Valid {
		id := postID.Int64
		sug.PostID = &id
	}
	return &sug, nil
}

// GetSuggestion retrieves a suggestion by id.
func (s *Store) GetSuggestion(ctx context.Context, id int64) (*Suggestion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = ?`, id)
	sug, err := scanSuggestion(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get suggestion %d: %w", id, err)
	}
	return sug, nil
}

// ListPendingSuggestions returns pending suggestions, newest first.
func (s *Store) ListPendingSuggestions(ctx context.Context, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+suggestionColumns+` FROM suggestions
		WHERE status = ? ORDER BY generated_at DESC LIMIT ?
	`, StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending suggestions: %w", err)
	}
	defer rows.Close()

	var out []Suggestion
	for rows.Next() {
		sug, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		out = append(out, *sug)
	}
	return out, rows.Err()
}

// CountPendingSuggestions returns the number of unmoderated suggestions.
func (s *Store) CountPendingSuggestions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM suggestions WHERE status = ?`, StatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending suggestions: %w", err)
	}
	return count, nil
}

// DeleteSuggestion removes a suggestion regardless of state. Posts already
// created from it are untouched.
func (s *Store) DeleteSuggestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suggestions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete suggestion %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// likePredicate builds a case-insensitive OR-alternation over keywords
// for the given column, mirroring the keyword-overlap duplicate policy.
func likePredicate(column string, keywords []string) (string, []any) {
	if len(keywords) == 0 {
		return "0", nil
	}
	clauses := make([]string, 0, len(keywords))
	args := make([]any, 0, len(keywords))
	for _, kw := range keywords {
		clauses = append(clauses, "lower("+column+") LIKE ?")
		args = append(args, "%"+strings.ToLower(kw)+"%")
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}

// HasSimilarSuggestion reports whether any suggestion created after since
// overlaps the given title keywords, source, or provenance id.
func (s *Store) HasSimilarSuggestion(ctx context.Context, keywords []string, source, uniqueID string, since time.Time) (bool, error) {
	pred, args := likePredicate("title", keywords)
	query := `SELECT COUNT(*) FROM suggestions WHERE (` + pred
	if source != "" {
		query += ` OR lower(source) LIKE ?`
		args = append(args, "%"+strings.ToLower(source)+"%")
	}
	if uniqueID != "" {
		query += ` OR unique_id = ?`
		args = append(args, uniqueID)
	}
	query += `) AND generated_at >= ?`
	args = append(args, since)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("similar suggestion query: %w", err)
	}
	return count > 0, nil
}

// HasSimilarPost reports whether any post created after since overlaps the
// given title keywords or news source.
func (s *Store) HasSimilarPost(ctx context.Context, keywords []string, newsSource string, since time.Time) (bool, error) {
	pred, args := likePredicate("title", keywords)
	query := `SELECT COUNT(*) FROM posts WHERE (` + pred
	if newsSource != "" {
		query += ` OR lower(news_source) LIKE ?`
		args = append(args, "%"+strings.ToLower(newsSource)+"%")
	}
	query += `) AND created_at >= ?`
	args = append(args, since)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("similar post query: %w", err)
	}
	return count > 0, nil
}

// TitleExists reports whether an exact or keyword-overlapping title already
// exists among suggestions or posts, without a time window. Used to re-check
// the AI-produced title before persisting.
func (s *Store) TitleExists(ctx context.Context, title string, keywords []string) (bool, error) {
	pred, predArgs := likePredicate("title", keywords)

	for _, q := range []struct {
		query string
		args  []any
	}{
		{`SELECT COUNT(*) FROM suggestions WHERE title = ? OR ` + pred,
			append([]any{title}, predArgs...)},
		{`SELECT COUNT(*) FROM posts WHERE title = ? OR ` + pred,
			append([]any{title}, predArgs...)},
	} {
		var count int
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(&count); err != nil {
			return false, fmt.Errorf("title exists query: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
