// Package csv provides CSV-based site loading.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.ngs.io/solar-api/internal/adapter/store"
	"go.ngs.io/solar-api/internal/domain"
)

// SitesFile is the file name read from the data directory.
const SitesFile = "sites.csv"

//nolint:gochecknoglobals // Read-only header definition.
var expectedHeader = []string{"site", "latitude_deg", "longitude_deg", "altitude_m", "tz_offset_min"}

// SiteStore serves named sites from <dataDir>/sites.csv. The file is read
// once, on first use.
type SiteStore struct {
	path string

	once  sync.Once
	sites []domain.Site
	byID  map[string]int
	err   error
}

// NewSiteStore creates a new CSV-based site store.
func NewSiteStore(dataDir string) *SiteStore {
	return &SiteStore{path: filepath.Join(dataDir, SitesFile)}
}

// LoadSite returns the site with the given ID.
func (s *SiteStore) LoadSite(siteID string) (domain.Site, error) {
	if err := s.load(); err != nil {
		return domain.Site{}, err
	}
	i, ok := s.byID[strings.ToLower(strings.TrimSpace(siteID))]
	if !ok {
		return domain.Site{}, fmt.Errorf("%w: %s", store.ErrSiteNotFound, siteID)
	}
	return s.sites[i], nil
}

// ListSites returns all sites in file order.
func (s *SiteStore) ListSites() ([]domain.Site, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]domain.Site, len(s.sites))
	copy(out, s.sites)
	return out, nil
}

func (s *SiteStore) load() error {
	s.once.Do(func() {
		s.sites, s.err = readSites(s.path)
		if s.err != nil {
			return
		}
		s.byID = make(map[string]int, len(s.sites))
		for i, site := range s.sites {
			s.byID[strings.ToLower(site.ID)] = i
		}
	})
	return s.err
}

func readSites(path string) ([]domain.Site, error) {
	//nolint:gosec // G304: Path comes from configuration.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sites file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return parseSites(file)
}

func parseSites(r io.Reader) ([]domain.Site, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != len(expectedHeader) {
		return nil, fmt.Errorf("invalid CSV header: expected %v, got %v", expectedHeader, header)
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeader[i] {
			return nil, fmt.Errorf("invalid CSV header: expected column %d to be %s, got %s", i, expectedHeader[i], h)
		}
	}

	sites := make([]domain.Site, 0)
	seen := make(map[string]bool)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		site, err := parseRecord(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		key := strings.ToLower(site.ID)
		if seen[key] {
			return nil, fmt.Errorf("duplicate site %q", site.ID)
		}
		seen[key] = true
		sites = append(sites, site)
	}

	if len(sites) == 0 {
		return nil, errors.New("no sites found in CSV")
	}
	return sites, nil
}

func parseRecord(record []string) (domain.Site, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return domain.Site{}, errors.New("empty site id")
	}

	var coords [3]float64
	for i := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
		if err != nil {
			return domain.Site{}, fmt.Errorf("invalid %s for site %s: %w", expectedHeader[i+1], id, err)
		}
		coords[i] = v
	}
	offset, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return domain.Site{}, fmt.Errorf("invalid tz_offset_min for site %s: %w", id, err)
	}

	loc := domain.Location{LatitudeDeg: coords[0], LongitudeDeg: coords[1], AltitudeM: coords[2]}
	if err := loc.Validate(); err != nil {
		return domain.Site{}, fmt.Errorf("site %s: %w", id, err)
	}
	return domain.Site{ID: id, Location: loc, TimezoneOffsetMin: offset}, nil
}
