package docidx

import (
	"context"
	"time"
)

// Site represents a documentation site whose search index is tracked.
type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// SourceURL is what the user registered: a local file, the index URL,
	// or a page of the rendered site. IndexURL is where the index was found.
	SourceURL string `json:"sourceUrl"`
	IndexURL  string `json:"indexUrl"`

	// ContentHash identifies the raw index bytes of the last refresh.
	ContentHash string `json:"contentHash"`
	EntryCount  int    `json:"entryCount"`

	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.SourceURL == "" {
		return Errorf(EINVALID, "site source URL required")
	}
	return nil
}

// SiteService represents a service for managing sites.
type SiteService interface {
	// CreateSite creates a new site.
	// Returns ECONFLICT if a site with the same name exists.
	CreateSite(ctx context.Context, site *Site) error

	// FindSiteByID retrieves a site by ID.
	// Returns ENOTFOUND if site does not exist.
	FindSiteByID(ctx context.Context, id string) (*Site, error)

	// FindSites retrieves sites matching the filter.
	FindSites(ctx context.Context, filter SiteFilter) ([]*Site, error)

	// UpdateSite updates an existing site.
	// Returns ENOTFOUND if site does not exist.
	UpdateSite(ctx context.Context, id string, upd SiteUpdate) (*Site, error)

	// DeleteSite permanently removes a site and all of its entries.
	// Returns ENOTFOUND if site does not exist.
	DeleteSite(ctx context.Context, id string) error
}

// SiteFilter represents a filter for FindSites.
type SiteFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SiteUpdate represents fields that can be updated on a site.
type SiteUpdate struct {
	Name        *string    `json:"name"`
	SourceURL   *string    `json:"sourceUrl"`
	IndexURL    *string    `json:"indexUrl"`
	ContentHash *string    `json:"contentHash"`
	EntryCount  *int       `json:"entryCount"`
	RefreshedAt *time.Time `json:"refreshedAt"`
}

// FindSiteByName returns the site with the given name.
// Returns ENOTFOUND if no such site is registered.
func FindSiteByName(ctx context.Context, sites SiteService, name string) (*Site, error) {
	found, err := sites.FindSites(ctx, SiteFilter{Name: &name, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, Errorf(ENOTFOUND, "site %q not found", name)
	}
	return found[0], nil
}
