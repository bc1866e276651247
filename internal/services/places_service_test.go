package services

import (
	"context"
	"testing"

	"turakBack/internal/models"
)

type fakeListingGetter struct {
	listing models.Listing
	err     error
}

func (f fakeListingGetter) GetListingByID(ctx context.Context, id, viewerID int) (models.Listing, error) {
	return f.listing, f.err
}

type fakeCatalog struct {
	places []models.Place
	calls  int
}

func (f *fakeCatalog) NearbyPlaces(ctx context.Context, lon, lat float64, category string, radiusM, limit int) ([]models.Place, error) {
	f.calls++
	return f.places, nil
}

func TestNearbyPlaces_NoCoordinates(t *testing.T) {
	svc := &PlacesService{
		ListingRepo: fakeListingGetter{listing: models.Listing{ID: 1}},
		Catalog:     &fakeCatalog{},
	}

	_, err := svc.NearbyPlaces(context.Background(), 1, "pharmacy", 500, 10)
	if err != ErrInvalidCoordinates {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestNearbyPlaces_CallsCatalog(t *testing.T) {
	lat, lon := 43.238949, 76.889709
	catalog := &fakeCatalog{places: []models.Place{
		{Name: "Europharma", Category: "pharmacy", Lat: lat, Lon: lon, DistM: 120},
	}}
	svc := &PlacesService{
		ListingRepo: fakeListingGetter{listing: models.Listing{
			ID:        1,
			Latitude:  &lat,
			Longitude: &lon,
		}},
		Catalog: catalog,
	}

	resp, err := svc.NearbyPlaces(context.Background(), 1, "pharmacy", 500, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.calls != 1 {
		t.Errorf("expected 1 catalog call, got %d", catalog.calls)
	}
	if resp.Cached {
		t.Errorf("expected uncached response")
	}
	if len(resp.Places) != 1 || resp.Places[0].Name != "Europharma" {
		t.Errorf("places mismatch: %+v", resp.Places)
	}
	if resp.ListingID != 1 || resp.Category != "pharmacy" || resp.RadiusM != 500 {
		t.Errorf("response envelope mismatch: %+v", resp)
	}
}

func TestPlacesCacheKey(t *testing.T) {
	if got := placesCacheKey(7, "school", 1000, 10); got != "places:7:school:1000:10" {
		t.Errorf("cache key mismatch: %q", got)
	}
	// Different limits must not share a cache entry.
	if placesCacheKey(7, "school", 1000, 10) == placesCacheKey(7, "school", 1000, 50) {
		t.Error("cache key must include the limit")
	}
}
