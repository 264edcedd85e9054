// Package store persists anonymous site analytics in SQLite: hashed visitor
// records and counts of which page section readers reach. Contact form
// content is never stored.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Retention is how long visitor rows are kept before Cleanup removes them.
const Retention = 365 * 24 * time.Hour

// Store wraps a sql.DB holding the analytics tables.
type Store struct {
	db *sql.DB
}

// Visitor is one tracked page view. The client IP is only ever kept hashed.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// SectionStat counts how often readers scrolled into a section.
type SectionStat struct {
	SectionID string `json:"section_id"`
	Views     int64  `json:"views"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64         `json:"total_visitors"`
	UniqueVisitors   int64         `json:"unique_visitors"`
	VisitorsToday    int64         `json:"visitors_today"`
	VisitorsThisWeek int64         `json:"visitors_this_week"`
	TotalSectionView int64         `json:"total_section_views"`
	TopSections      []SectionStat `json:"top_sections"`
	RecentVisitors   []Visitor     `json:"recent_visitors"`
}

// Open creates or opens the database at path and migrates it.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newStore(db)
}

// OpenMemory opens a private in-memory database, for tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// every new connection would get its own empty database
	db.SetMaxOpenConns(1)
	return newStore(db)
}

func newStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    hashed_ip TEXT NOT NULL,
    user_agent TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visitors_created ON visitors(created_at);

CREATE TABLE IF NOT EXISTS section_views (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    section_id TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_section_views_section ON section_views(section_id);
`

// RecordVisit stores one page view.
func (s *Store) RecordVisit(ctx context.Context, v Visitor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, created_at)
		VALUES (?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Timestamp.Unix())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// RecordSectionView counts a reader reaching sectionID.
func (s *Store) RecordSectionView(ctx context.Context, sectionID string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO section_views (section_id, created_at) VALUES (?, ?)
	`, sectionID, at.Unix())
	if err != nil {
		return fmt.Errorf("recording section view: %w", err)
	}
	return nil
}

// Cleanup deletes visitor rows older than Retention relative to now and
// returns how many were removed.
func (s *Store) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE created_at < ?`,
		now.Add(-Retention).Unix())
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	return res.RowsAffected()
}

// RecentVisitors returns the newest visitors first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, created_at
		FROM visitors
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// SectionViews returns per-section counts, most viewed first.
func (s *Store) SectionViews(ctx context.Context) ([]SectionStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section_id, COUNT(*) AS views
		FROM section_views
		GROUP BY section_id
		ORDER BY views DESC, section_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying section views: %w", err)
	}
	defer rows.Close()

	var stats []SectionStat
	for rows.Next() {
		var st SectionStat
		if err := rows.Scan(&st.SectionID, &st.Views); err != nil {
			return nil, fmt.Errorf("scanning section view: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Stats builds the dashboard summary as of now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{startOfDay.Unix()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{now.AddDate(0, 0, -7).Unix()}},
		{&stats.TotalSectionView, `SELECT COUNT(*) FROM section_views`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("counting: %w", err)
		}
	}

	var err error
	if stats.TopSections, err = s.SectionViews(ctx); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}
