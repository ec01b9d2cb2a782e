package mock

import (
	"context"

	"github.com/fwojciec/docidx"
)

var _ docidx.SiteService = (*SiteService)(nil)

// SiteService is a mock implementation of docidx.SiteService.
type SiteService struct {
	CreateSiteFn   func(ctx context.Context, site *docidx.Site) error
	FindSiteByIDFn func(ctx context.Context, id string) (*docidx.Site, error)
	FindSitesFn    func(ctx context.Context, filter docidx.SiteFilter) ([]*docidx.Site, error)
	UpdateSiteFn   func(ctx context.Context, id string, upd docidx.SiteUpdate) (*docidx.Site, error)
	DeleteSiteFn   func(ctx context.Context, id string) error
}

func (s *SiteService) CreateSite(ctx context.Context, site *docidx.Site) error {
	return s.CreateSiteFn(ctx, site)
}

func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*docidx.Site, error) {
	return s.FindSiteByIDFn(ctx, id)
}

func (s *SiteService) FindSites(ctx context.Context, filter docidx.SiteFilter) ([]*docidx.Site, error) {
	return s.FindSitesFn(ctx, filter)
}

func (s *SiteService) UpdateSite(ctx context.Context, id string, upd docidx.SiteUpdate) (*docidx.Site, error) {
	return s.UpdateSiteFn(ctx, id, upd)
}

func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	return s.DeleteSiteFn(ctx, id)
}
