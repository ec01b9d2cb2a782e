package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/docidx"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docidx.SiteService = (*SiteService)(nil)

const siteColumns = "id, name, source_url, index_url, content_hash, entry_count, created_at, updated_at, refreshed_at"

// SiteService implements docidx.SiteService using SQLite.
type SiteService struct {
	db *DB
}

// NewSiteService creates a new SiteService.
func NewSiteService(db *DB) *SiteService {
	return &SiteService{db: db}
}

// CreateSite creates a new site.
func (s *SiteService) CreateSite(ctx context.Context, site *docidx.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}

	site.ID = uuid.New().String()
	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sites (`+siteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, site.ID, site.Name, site.SourceURL, site.IndexURL, site.ContentHash, site.EntryCount,
		site.CreatedAt.Format(time.RFC3339), site.UpdatedAt.Format(time.RFC3339),
		formatOptionalRFC3339(site.RefreshedAt))

	if isUniqueViolation(err) {
		return docidx.Errorf(docidx.ECONFLICT, "site %q already exists", site.Name)
	}
	return err
}

// FindSiteByID retrieves a site by ID.
func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*docidx.Site, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+siteColumns+" FROM sites WHERE id = ?", id)

	site, err := scanSite(row)
	if err == sql.ErrNoRows {
		return nil, docidx.Errorf(docidx.ENOTFOUND, "site not found")
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// FindSites retrieves sites matching the filter, ordered by name.
func (s *SiteService) FindSites(ctx context.Context, filter docidx.SiteFilter) ([]*docidx.Site, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + siteColumns + " FROM sites WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*docidx.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// UpdateSite updates an existing site.
func (s *SiteService) UpdateSite(ctx context.Context, id string, upd docidx.SiteUpdate) (*docidx.Site, error) {
	// First check if site exists
	site, err := s.FindSiteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.Name != nil {
		site.Name = *upd.Name
	}
	if upd.SourceURL != nil {
		site.SourceURL = *upd.SourceURL
	}
	if upd.IndexURL != nil {
		site.IndexURL = *upd.IndexURL
	}
	if upd.ContentHash != nil {
		site.ContentHash = *upd.ContentHash
	}
	if upd.EntryCount != nil {
		site.EntryCount = *upd.EntryCount
	}
	if upd.RefreshedAt != nil {
		site.RefreshedAt = upd.RefreshedAt.UTC().Truncate(time.Second)
	}

	// Validate before persisting
	if err := site.Validate(); err != nil {
		return nil, err
	}

	site.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sites
		SET name = ?, source_url = ?, index_url = ?, content_hash = ?, entry_count = ?,
			updated_at = ?, refreshed_at = ?
		WHERE id = ?
	`, site.Name, site.SourceURL, site.IndexURL, site.ContentHash, site.EntryCount,
		site.UpdatedAt.Format(time.RFC3339), formatOptionalRFC3339(site.RefreshedAt), id)

	if isUniqueViolation(err) {
		return nil, docidx.Errorf(docidx.ECONFLICT, "site %q already exists", site.Name)
	}
	if err != nil {
		return nil, err
	}

	return site, nil
}

// DeleteSite permanently removes a site. Its entries are removed by the
// foreign key cascade.
func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docidx.Errorf(docidx.ENOTFOUND, "site not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSite(row scanner) (*docidx.Site, error) {
	var site docidx.Site
	var createdAt, updatedAt, refreshedAt string

	if err := row.Scan(&site.ID, &site.Name, &site.SourceURL, &site.IndexURL, &site.ContentHash,
		&site.EntryCount, &createdAt, &updatedAt, &refreshedAt); err != nil {
		return nil, err
	}

	var err error
	if site.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if site.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if site.RefreshedAt, err = parseOptionalRFC3339(refreshedAt, "refreshed_at"); err != nil {
		return nil, err
	}
	return &site, nil
}
