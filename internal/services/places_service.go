package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

const placesCacheTTL = 6 * time.Hour

// PlacesCatalog is what the 2GIS client implements. Kept as an interface so
// tests can substitute a fake.
type PlacesCatalog interface {
	NearbyPlaces(ctx context.Context, lon, lat float64, category string, radiusM, limit int) ([]models.Place, error)
}

// ListingGetter is the slice of the listing repository this service needs.
type ListingGetter interface {
	GetListingByID(ctx context.Context, id, viewerID int) (models.Listing, error)
}

var _ ListingGetter = (*repositories.ListingRepository)(nil)

// PlacesService answers "what is around this listing" questions, caching
// catalog responses in Redis. A nil Redis client disables the cache.
type PlacesService struct {
	ListingRepo ListingGetter
	Catalog     PlacesCatalog
	Redis       *redis.Client
}

func placesCacheKey(listingID int, category string, radiusM, limit int) string {
	return fmt.Sprintf("places:%d:%s:%d:%d", listingID, category, radiusM, limit)
}

func (s *PlacesService) NearbyPlaces(ctx context.Context, listingID int, category string, radiusM, limit int) (models.NearbyPlacesResponse, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID, 0)
	if err != nil {
		return models.NearbyPlacesResponse{}, err
	}
	if listing.Latitude == nil || listing.Longitude == nil {
		return models.NearbyPlacesResponse{}, ErrInvalidCoordinates
	}

	resp := models.NearbyPlacesResponse{
		ListingID: listingID,
		Category:  category,
		RadiusM:   radiusM,
	}

	key := placesCacheKey(listingID, category, radiusM, limit)
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, key).Bytes()
		if err == nil {
			if json.Unmarshal(cached, &resp.Places) == nil {
				resp.Cached = true
				return resp, nil
			}
		}
	}

	places, err := s.Catalog.NearbyPlaces(ctx, *listing.Longitude, *listing.Latitude, category, radiusM, limit)
	if err != nil {
		return models.NearbyPlacesResponse{}, err
	}
	resp.Places = places

	if s.Redis != nil {
		if b, err := json.Marshal(places); err == nil {
			s.Redis.Set(ctx, key, b, placesCacheTTL)
		}
	}
	return resp, nil
}
