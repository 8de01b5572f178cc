// Package store defines the site storage interface.
package store

import (
	"errors"

	"go.ngs.io/solar-api/internal/domain"
)

// ErrSiteNotFound is returned when a site ID is not in the store.
var ErrSiteNotFound = errors.New("site not found")

// SiteLoader is the interface for loading named observation sites.
type SiteLoader interface {
	// LoadSite returns the site with the given ID (case-insensitive).
	LoadSite(siteID string) (domain.Site, error)

	// ListSites returns every site in file order.
	ListSites() ([]domain.Site, error)
}
