package csv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.ngs.io/solar-api/internal/adapter/store"
)

const sampleSites = `site,latitude_deg,longitude_deg,altitude_m,tz_offset_min
# Observatories
tokyo, 35.6812, 139.7671, 40, 540
greenwich,51.4779,-0.0015,46,0
Mauna_Kea,19.8207,-155.4681,4205,-600
`

func writeSites(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SitesFile), []byte(content), 0o600); err != nil {
		t.Fatalf("write sites: %v", err)
	}
	return dir
}

func TestSiteStore_LoadSite(t *testing.T) {
	s := NewSiteStore(writeSites(t, sampleSites))

	site, err := s.LoadSite("TOKYO")
	if err != nil {
		t.Fatalf("LoadSite: %v", err)
	}
	if site.ID != "tokyo" || site.TimezoneOffsetMin != 540 || site.Location.AltitudeM != 40 {
		t.Errorf("Unexpected site: %+v", site)
	}

	site, err = s.LoadSite("mauna_kea")
	if err != nil {
		t.Fatalf("LoadSite: %v", err)
	}
	if site.TimezoneOffsetMin != -600 {
		t.Errorf("Expected offset -600, got %d", site.TimezoneOffsetMin)
	}

	_, err = s.LoadSite("paris")
	if !errors.Is(err, store.ErrSiteNotFound) {
		t.Errorf("Expected ErrSiteNotFound, got %v", err)
	}
}

func TestSiteStore_ListSites(t *testing.T) {
	s := NewSiteStore(writeSites(t, sampleSites))
	sites, err := s.ListSites()
	if err != nil {
		t.Fatalf("ListSites: %v", err)
	}
	want := []string{"tokyo", "greenwich", "Mauna_Kea"}
	if len(sites) != len(want) {
		t.Fatalf("Expected %d sites, got %d", len(want), len(sites))
	}
	for i, id := range want {
		if sites[i].ID != id {
			t.Errorf("Site %d: expected %s, got %s", i, id, sites[i].ID)
		}
	}
}

func TestParseSites_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"bad header", "id,lat,lon,alt,tz\n", "invalid CSV header"},
		{"bad latitude", "site,latitude_deg,longitude_deg,altitude_m,tz_offset_min\nx,north,0,0,0\n", "latitude_deg"},
		{"bad offset", "site,latitude_deg,longitude_deg,altitude_m,tz_offset_min\nx,1,0,0,1.5\n", "tz_offset_min"},
		{"duplicate", "site,latitude_deg,longitude_deg,altitude_m,tz_offset_min\na,1,0,0,0\nA,2,0,0,0\n", "duplicate"},
		{"empty", "site,latitude_deg,longitude_deg,altitude_m,tz_offset_min\n", "no sites"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSites(strings.NewReader(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

func TestSiteStore_MissingFile(t *testing.T) {
	s := NewSiteStore(t.TempDir())
	if _, err := s.ListSites(); err == nil {
		t.Error("Expected error for missing sites file")
	}
}
