package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docidx"
)

// Compile-time interface verification.
var _ docidx.EntryService = (*EntryService)(nil)

// EntryService implements docidx.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// ReplaceEntries deletes every entry of the site and inserts entries in
// their place within one transaction. A failure leaves the previous
// entries intact.
func (s *EntryService) ReplaceEntries(ctx context.Context, siteID string, entries []*docidx.SearchEntry) error {
	if siteID == "" {
		return docidx.Errorf(docidx.EINVALID, "site ID required")
	}
	for i, e := range entries {
		if e == nil {
			return docidx.Errorf(docidx.EINVALID, "entry %d: null entry", i)
		}
		if err := e.Validate(); err != nil {
			return docidx.Errorf(docidx.EINVALID, "entry %d: %s", i, docidx.ErrorMessage(err))
		}
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sites WHERE id = ?", siteID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return docidx.Errorf(docidx.ENOTFOUND, "site not found")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE site_id = ?", siteID); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (site_id, position, location, page, title, text, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, siteID, i, e.Location, e.Page, e.Title, e.Text, string(e.Category)); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
		e.SiteID = siteID
		e.Position = i
	}

	return tx.Commit()
}

// FindEntries retrieves entries matching the filter, ordered by site and
// position. Keyword matching follows docidx.Find, so pagination is applied
// after matching when a keyword is set.
func (s *EntryService) FindEntries(ctx context.Context, filter docidx.EntryFilter) ([]*docidx.SearchEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT site_id, position, location, page, title, text, category FROM entries WHERE 1=1")

	if filter.SiteID != nil {
		query.WriteString(" AND site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.Location != nil {
		query.WriteString(" AND location = ?")
		args = append(args, *filter.Location)
	}
	if len(filter.Categories) > 0 {
		query.WriteString(" AND category IN (" + placeholders(len(filter.Categories)) + ")")
		for _, c := range filter.Categories {
			args = append(args, string(c))
		}
	}

	query.WriteString(" ORDER BY site_id ASC, position ASC")

	keyword := strings.TrimSpace(filter.Keyword)
	if keyword == "" {
		appendPagination(&query, &args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*docidx.SearchEntry{}
	for rows.Next() {
		var e docidx.SearchEntry
		var category string
		if err := rows.Scan(&e.SiteID, &e.Position, &e.Location, &e.Page, &e.Title, &e.Text, &category); err != nil {
			return nil, err
		}
		e.Category = docidx.Category(category)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if keyword == "" {
		return entries, nil
	}

	opts := filter.LookupOptions()
	if filter.Limit > 0 {
		opts.Limit = filter.Offset + filter.Limit
	}
	matches := docidx.Find(entries, keyword, opts)
	if filter.Offset >= len(matches) {
		return []*docidx.SearchEntry{}, nil
	}
	return matches[filter.Offset:], nil
}
