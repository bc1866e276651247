package services

import (
	"context"
	"fmt"
	"log"

	"turakBack/internal/geo"
	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

type ListingService struct {
	ListingRepo  *repositories.ListingRepository
	FavoriteRepo *repositories.ListingFavoriteRepository
	Locator      *geo.ListingLocator
	Notification *NotificationService
	ErrorLog     *log.Logger
}

// CreateListing stores a new listing owned by the requester. It always starts
// in moderation regardless of what the payload says.
func (s *ListingService) CreateListing(ctx context.Context, listing models.Listing, requesterID int) (models.Listing, error) {
	listing.UserID = requesterID
	listing.Status = "pending"
	return s.ListingRepo.CreateListing(ctx, listing)
}

func (s *ListingService) GetListingByID(ctx context.Context, id, viewerID int) (models.Listing, error) {
	return s.ListingRepo.GetListingByID(ctx, id, viewerID)
}

func (s *ListingService) GetFilteredListings(ctx context.Context, filter models.ListingFilterRequest, viewerID int) (models.ListingListResponse, error) {
	return s.ListingRepo.GetFilteredListings(ctx, filter, viewerID)
}

func (s *ListingService) GetFeed(ctx context.Context, cursor, limit int) (models.FeedPage, error) {
	return s.ListingRepo.GetFeed(ctx, cursor, limit)
}

func (s *ListingService) GetListingsByUserID(ctx context.Context, userID int) ([]models.Listing, error) {
	return s.ListingRepo.GetListingsByUserID(ctx, userID)
}

// UpdateListing is owner-only. Edited listings go back through moderation and
// drop out of the geo index until approved again.
func (s *ListingService) UpdateListing(ctx context.Context, listing models.Listing, requesterID int) (models.Listing, error) {
	current, err := s.ListingRepo.GetListingByID(ctx, listing.ID, requesterID)
	if err != nil {
		return models.Listing{}, err
	}
	if current.UserID != requesterID {
		return models.Listing{}, ErrForbidden
	}

	listing.UserID = current.UserID
	listing.Status = "pending"
	updated, err := s.ListingRepo.UpdateListing(ctx, listing)
	if err != nil {
		return models.Listing{}, err
	}
	s.removeFromIndex(ctx, current)
	return updated, nil
}

func (s *ListingService) ArchiveListing(ctx context.Context, id, requesterID int) error {
	listing, err := s.ListingRepo.GetListingByID(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if listing.UserID != requesterID {
		return ErrForbidden
	}
	if err := s.ListingRepo.UpdateStatus(ctx, id, "archived"); err != nil {
		return err
	}
	s.removeFromIndex(ctx, listing)
	return nil
}

func (s *ListingService) DeleteListing(ctx context.Context, id, requesterID int, isAdmin bool) error {
	listing, err := s.ListingRepo.GetListingByID(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if listing.UserID != requesterID && !isAdmin {
		return ErrForbidden
	}
	if err := s.ListingRepo.DeleteListing(ctx, id); err != nil {
		return err
	}
	s.removeFromIndex(ctx, listing)
	return nil
}

// Moderation.

func (s *ListingService) GetPendingListings(ctx context.Context) ([]models.Listing, error) {
	return s.ListingRepo.GetListingsByStatus(ctx, "pending")
}

func (s *ListingService) ApproveListing(ctx context.Context, id int) error {
	listing, err := s.ListingRepo.GetListingByID(ctx, id, 0)
	if err != nil {
		return err
	}
	if err := s.ListingRepo.UpdateStatus(ctx, id, "active"); err != nil {
		return err
	}

	if listing.Latitude != nil && listing.Longitude != nil {
		err = s.Locator.UpsertListing(ctx, listing.ID, listing.CityID, *listing.Longitude, *listing.Latitude)
		if err != nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("geo upsert listing %d: %v", listing.ID, err)
		}
	}

	_, err = s.Notification.Notify(ctx, models.Notification{
		UserID: listing.UserID,
		Type:   models.NotificationTypeModeration,
		Title:  "Listing approved",
		Body:   fmt.Sprintf("Your listing %q is now visible in search.", listing.Title),
		Link:   fmt.Sprintf("/listings/%d", listing.ID),
	})
	return err
}

func (s *ListingService) RejectListing(ctx context.Context, id int, reason string) error {
	listing, err := s.ListingRepo.GetListingByID(ctx, id, 0)
	if err != nil {
		return err
	}
	if err := s.ListingRepo.UpdateStatus(ctx, id, "rejected"); err != nil {
		return err
	}
	s.removeFromIndex(ctx, listing)

	body := fmt.Sprintf("Your listing %q was rejected.", listing.Title)
	if reason != "" {
		body = fmt.Sprintf("Your listing %q was rejected: %s", listing.Title, reason)
	}
	_, err = s.Notification.Notify(ctx, models.Notification{
		UserID: listing.UserID,
		Type:   models.NotificationTypeModeration,
		Title:  "Listing rejected",
		Body:   body,
		Link:   fmt.Sprintf("/listings/%d", listing.ID),
	})
	return err
}

func (s *ListingService) removeFromIndex(ctx context.Context, listing models.Listing) {
	if err := s.Locator.RemoveListing(ctx, listing.ID, listing.CityID); err != nil && s.ErrorLog != nil {
		s.ErrorLog.Printf("geo remove listing %d: %v", listing.ID, err)
	}
}

// NearbyListings resolves ids from the geo index and loads the full rows,
// keeping the distance ordering Redis returned.
func (s *ListingService) NearbyListings(ctx context.Context, cityID int, lon, lat, radiusM float64, limit, viewerID int) ([]models.Listing, error) {
	nearby, err := s.Locator.Nearby(ctx, cityID, lon, lat, radiusM, limit)
	if err != nil {
		return nil, err
	}

	listings := make([]models.Listing, 0, len(nearby))
	for _, n := range nearby {
		listing, err := s.ListingRepo.GetListingByID(ctx, n.ListingID, viewerID)
		if err != nil {
			// Index entries can outlive deleted rows.
			continue
		}
		if listing.Status != "active" {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// Favorites.

func (s *ListingService) AddToFavorites(ctx context.Context, userID, listingID int) error {
	return s.FavoriteRepo.AddToFavorites(ctx, userID, listingID)
}

func (s *ListingService) RemoveFromFavorites(ctx context.Context, userID, listingID int) error {
	return s.FavoriteRepo.RemoveFromFavorites(ctx, userID, listingID)
}

func (s *ListingService) GetFavoritesByUser(ctx context.Context, userID int) ([]models.Listing, error) {
	return s.FavoriteRepo.GetFavoritesByUser(ctx, userID)
}

func (s *ListingService) IsFavorite(ctx context.Context, userID, listingID int) (bool, error) {
	return s.FavoriteRepo.IsFavorite(ctx, userID, listingID)
}
