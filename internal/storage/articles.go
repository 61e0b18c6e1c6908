package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"stockpulse/internal/models"
)

// UpsertArticle inserts a processed article or updates it if a row with the
// same URL already exists. On conflict the enhanced_title, summary, snippet,
// keywords, and fetched_at fields are updated. The row ID is returned.
func (s *Store) UpsertArticle(ctx context.Context, a *models.Article) (int64, error) {
	var publishedAt *string
	if a.PublishedAt != nil {
		v := a.PublishedAt.Format("2006-01-02 15:04:05")
		publishedAt = &v
	}

	fetchedAt := a.FetchedAt.Format("2006-01-02 15:04:05")

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stock_news (symbol, company_name, title, enhanced_title, url, source, snippet, summary, keywords, published_at, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			enhanced_title = excluded.enhanced_title,
			summary        = excluded.summary,
			snippet        = excluded.snippet,
			keywords       = excluded.keywords,
			fetched_at     = excluded.fetched_at`,
		a.Symbol, nullableString(a.CompanyName), a.Title, a.EnhancedTitle, a.URL,
		nullableString(a.Source), nullableString(a.Snippet), a.Summary,
		encodeKeywords(a.Keywords), publishedAt, fetchedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("upserting article: %w", err)
	}

	// Retrieve the ID of the upserted row. SQLite's last_insert_rowid()
	// may not reflect the correct ID on an UPDATE path, so we query by URL.
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM stock_news WHERE url = ?`, a.URL).Scan(&id); err != nil {
		return 0, fmt.Errorf("getting upserted article id: %w", err)
	}
	return id, nil
}

// SaveArticles batch-upserts multiple articles inside a single transaction.
func (s *Store) SaveArticles(ctx context.Context, articles []models.Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stock_news (symbol, company_name, title, enhanced_title, url, source, snippet, summary, keywords, published_at, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			enhanced_title = excluded.enhanced_title,
			summary        = excluded.summary,
			snippet        = excluded.snippet,
			keywords       = excluded.keywords,
			fetched_at     = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range articles {
		a := &articles[i]
		var publishedAt *string
		if a.PublishedAt != nil {
			v := a.PublishedAt.Format("2006-01-02 15:04:05")
			publishedAt = &v
		}
		fetchedAt := a.FetchedAt.Format("2006-01-02 15:04:05")

		if _, err := stmt.ExecContext(ctx,
			a.Symbol, nullableString(a.CompanyName), a.Title, a.EnhancedTitle, a.URL,
			nullableString(a.Source), nullableString(a.Snippet), a.Summary,
			encodeKeywords(a.Keywords), publishedAt, fetchedAt,
		); err != nil {
			return fmt.Errorf("upserting article %q: %w", a.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetArticleByURL returns the article with the given URL.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetArticleByURL(ctx context.Context, url string) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, symbol, company_name, title, enhanced_title, url, source,
				snippet, summary, keywords, published_at, fetched_at, created_at
		 FROM stock_news
		 WHERE url = ?`, url)

	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting article by url: %w", err)
	}
	return article, nil
}

// ListArticles returns up to limit articles, newest first by publication
// date with unpublished rows last. A non-empty symbol restricts the result
// to that ticker.
func (s *Store) ListArticles(ctx context.Context, symbol string, limit int) ([]models.Article, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, symbol, company_name, title, enhanced_title, url, source,
					 snippet, summary, keywords, published_at, fetched_at, created_at
			  FROM stock_news`
	args := []any{}
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY published_at IS NULL, published_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating articles: %w", err)
	}
	return articles, nil
}

// CountArticles returns the total number of stored articles.
func (s *Store) CountArticles(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_news`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return count, nil
}

// scanner is a minimal interface satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanArticle scans a single stock_news row into a models.Article.
func scanArticle(row scanner) (*models.Article, error) {
	var (
		article     models.Article
		companyName sql.NullString
		source      sql.NullString
		snippet     sql.NullString
		keywords    sql.NullString
		publishedAt sql.NullString
		fetchedAt   string
		createdAt   string
	)

	if err := row.Scan(
		&article.ID, &article.Symbol, &companyName, &article.Title,
		&article.EnhancedTitle, &article.URL, &source, &snippet,
		&article.Summary, &keywords, &publishedAt, &fetchedAt, &createdAt,
	); err != nil {
		return nil, err
	}

	article.CompanyName = companyName.String
	article.Source = source.String
	article.Snippet = snippet.String
	article.Keywords = decodeKeywords(keywords.String)
	article.PublishedAt = parseTimePtr(nullStringToPtr(publishedAt))
	article.FetchedAt = parseTime(fetchedAt)
	article.CreatedAt = parseTime(createdAt)

	return &article, nil
}

// encodeKeywords serializes keywords as a JSON array for the keywords TEXT
// column. An empty slice maps to NULL.
func encodeKeywords(keywords []string) *string {
	if len(keywords) == 0 {
		return nil
	}
	raw, err := json.Marshal(keywords)
	if err != nil {
		return nil
	}
	s := string(raw)
	return &s
}

// decodeKeywords parses the JSON keywords column. Malformed values map to nil.
func decodeKeywords(s string) []string {
	if s == "" {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(s), &keywords); err != nil {
		return nil
	}
	return keywords
}

// nullableString converts an empty string to nil for nullable TEXT columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullStringToPtr converts a sql.NullString to a *string.
func nullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
