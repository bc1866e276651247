package services

import (
	"context"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

type ReviewService struct {
	ReviewRepo  *repositories.ReviewRepository
	ListingRepo *repositories.ListingRepository
}

// CreateReview requires the author to have had an accepted booking on the
// listing. A landlord cannot review their own listing.
func (s *ReviewService) CreateReview(ctx context.Context, review models.Review, authorID int) (models.Review, error) {
	review.UserID = authorID

	listing, err := s.ListingRepo.GetListingByID(ctx, review.ListingID, 0)
	if err != nil {
		return models.Review{}, err
	}
	if listing.UserID == authorID {
		return models.Review{}, ErrOwnListing
	}

	ok, err := s.ReviewRepo.HasAcceptedBooking(ctx, review.ListingID, authorID)
	if err != nil {
		return models.Review{}, err
	}
	if !ok {
		return models.Review{}, ErrReviewNotAllowed
	}

	return s.ReviewRepo.CreateReview(ctx, review)
}

func (s *ReviewService) GetReviewsByListingID(ctx context.Context, listingID, page, limit int) (models.ReviewListResponse, error) {
	return s.ReviewRepo.GetReviewsByListingID(ctx, listingID, page, limit)
}

func (s *ReviewService) UpdateReview(ctx context.Context, review models.Review, requesterID int) (models.Review, error) {
	current, err := s.ReviewRepo.GetReviewByID(ctx, review.ID)
	if err != nil {
		return models.Review{}, err
	}
	if current.UserID != requesterID {
		return models.Review{}, ErrForbidden
	}
	review.ListingID = current.ListingID
	review.UserID = current.UserID
	return s.ReviewRepo.UpdateReview(ctx, review)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id, requesterID int, isAdmin bool) error {
	review, err := s.ReviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != requesterID && !isAdmin {
		return ErrForbidden
	}
	return s.ReviewRepo.DeleteReview(ctx, id)
}
