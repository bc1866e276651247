package repositories

import (
	"strings"
	"testing"

	"turakBack/internal/models"
)

func TestMatchesAmenityFilter(t *testing.T) {
	available := []string{"Wi-Fi", "washer", " Parking "}

	if !matchesAmenityFilter(nil, available) {
		t.Fatal("empty requirement must match")
	}
	if !matchesAmenityFilter([]string{"wi-fi", "PARKING"}, available) {
		t.Fatal("case-insensitive match expected")
	}
	if matchesAmenityFilter([]string{"wi-fi", "balcony"}, available) {
		t.Fatal("missing amenity must not match")
	}
	if matchesAmenityFilter([]string{"balcony"}, nil) {
		t.Fatal("nothing available must not match")
	}
}

func TestBuildListingConditions(t *testing.T) {
	filter := models.ListingFilterRequest{
		CityID:     2,
		PriceFrom:  50000,
		PriceTo:    120000,
		MinRating:  4,
		OnlyVacant: true,
	}

	conds, args := buildListingConditions(filter, 1)

	joined := strings.Join(conds, " AND ")
	if !strings.Contains(joined, "l.status = 'active'") {
		t.Fatalf("status condition missing: %s", joined)
	}
	if !strings.Contains(joined, "l.city_id = $1") {
		t.Fatalf("city condition misnumbered: %s", joined)
	}
	if !strings.Contains(joined, "l.price >= $2") || !strings.Contains(joined, "l.price <= $3") {
		t.Fatalf("price conditions misnumbered: %s", joined)
	}
	if !strings.Contains(joined, "l.avg_rating >= $4") {
		t.Fatalf("rating condition misnumbered: %s", joined)
	}
	if !strings.Contains(joined, "l.available_slots > 0") {
		t.Fatalf("vacancy condition missing: %s", joined)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
}

func TestBuildListingConditionsAmenities(t *testing.T) {
	filter := models.ListingFilterRequest{
		CityID:    2,
		Amenities: []string{"wi-fi", "washer"},
	}

	conds, args := buildListingConditions(filter, 1)

	joined := strings.Join(conds, " AND ")
	if !strings.Contains(joined, "l.amenities @> $2::jsonb") {
		t.Fatalf("amenity containment condition missing: %s", joined)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args[1] != `["wi-fi","washer"]` {
		t.Fatalf("unexpected amenity arg: %v", args[1])
	}

	conds, _ = buildListingConditions(models.ListingFilterRequest{}, 1)
	if strings.Contains(strings.Join(conds, " "), "amenities") {
		t.Fatalf("no amenity condition expected for empty filter: %v", conds)
	}
}

func TestBuildListingConditionsStartArg(t *testing.T) {
	conds, args := buildListingConditions(models.ListingFilterRequest{CityID: 7}, 3)
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(args))
	}
	found := false
	for _, c := range conds {
		if c == "l.city_id = $3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected placeholder to start at $3, got %v", conds)
	}
}

func TestMatchesFilter(t *testing.T) {
	listing := models.Listing{
		CityID:         2,
		Price:          80000,
		AvgRating:      4.5,
		AvailableSlots: 1,
		Amenities:      []string{"wi-fi", "washer"},
		Status:         "active",
	}

	if !MatchesFilter(listing, models.ListingFilterRequest{CityID: 2, PriceTo: 100000, Amenities: []string{"Wi-Fi"}}) {
		t.Fatal("expected listing to match")
	}
	if MatchesFilter(listing, models.ListingFilterRequest{CityID: 3}) {
		t.Fatal("city mismatch must fail")
	}
	if MatchesFilter(listing, models.ListingFilterRequest{PriceFrom: 90000}) {
		t.Fatal("price floor must fail")
	}
	if MatchesFilter(listing, models.ListingFilterRequest{MinRating: 4.8}) {
		t.Fatal("rating floor must fail")
	}

	listing.AvailableSlots = 0
	if MatchesFilter(listing, models.ListingFilterRequest{OnlyVacant: true}) {
		t.Fatal("fully booked listing must fail only_vacant")
	}

	listing.Status = "archived"
	if MatchesFilter(listing, models.ListingFilterRequest{}) {
		t.Fatal("non-active listing must never match")
	}
}
