package geo

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"turakBack/internal/models"
)

// ListingLocator maintains the Redis GEO index of active listings and answers
// nearby queries for the feed and the places endpoints.
type ListingLocator struct {
	rdb *redis.Client
}

func NewListingLocator(rdb *redis.Client) *ListingLocator {
	return &ListingLocator{rdb: rdb}
}

func listingsKey(cityID int) string {
	return fmt.Sprintf("listings:geo:%d", cityID)
}

func memberName(listingID int) string {
	return fmt.Sprintf("listing:%d", listingID)
}

func parseListingMember(member string) (int, error) {
	parts := strings.Split(member, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid member %q", member)
	}
	return strconv.Atoi(parts[1])
}

// UpsertListing puts a listing into the city geo set. Coordinates are
// validated here so a bad client payload can never poison the index.
func (l *ListingLocator) UpsertListing(ctx context.Context, listingID, cityID int, lon, lat float64) error {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return fmt.Errorf("UpsertListing: invalid coords lon=%.8f lat=%.8f", lon, lat)
	}
	if math.Abs(lon) < 1e-4 && math.Abs(lat) < 1e-4 {
		return fmt.Errorf("UpsertListing: near-zero coords lon=%.8f lat=%.8f", lon, lat)
	}
	return l.rdb.GeoAdd(ctx, listingsKey(cityID), &redis.GeoLocation{
		Name:      memberName(listingID),
		Longitude: lon,
		Latitude:  lat,
	}).Err()
}

// RemoveListing drops a listing from the city geo set. Archived and rejected
// listings must not show up in nearby queries.
func (l *ListingLocator) RemoveListing(ctx context.Context, listingID, cityID int) error {
	return l.rdb.ZRem(ctx, listingsKey(cityID), memberName(listingID)).Err()
}

// Nearby returns active listings within radiusM meters of the point, closest
// first, at most limit rows.
func (l *ListingLocator) Nearby(ctx context.Context, cityID int, lon, lat float64, radiusM float64, limit int) ([]models.NearbyListing, error) {
	if limit <= 0 {
		limit = 20
	}
	locs, err := l.rdb.GeoSearchLocation(ctx, listingsKey(cityID), &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lon,
			Latitude:   lat,
			Radius:     radiusM,
			RadiusUnit: "m",
			Sort:       "ASC",
			Count:      limit,
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		return nil, err
	}

	out := make([]models.NearbyListing, 0, len(locs))
	for _, loc := range locs {
		id, err := parseListingMember(loc.Name)
		if err != nil {
			continue
		}
		out = append(out, models.NearbyListing{
			ListingID: id,
			DistM:     loc.Dist,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}
	return out, nil
}
