package services

import (
	"context"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

type SavedSearchService struct {
	SavedSearchRepo *repositories.SavedSearchRepository
}

func (s *SavedSearchService) CreateSavedSearch(ctx context.Context, search models.SavedSearch, requesterID int) (models.SavedSearch, error) {
	search.UserID = requesterID
	return s.SavedSearchRepo.CreateSavedSearch(ctx, search)
}

func (s *SavedSearchService) GetSavedSearchesByUser(ctx context.Context, userID int) ([]models.SavedSearch, error) {
	return s.SavedSearchRepo.GetSavedSearchesByUser(ctx, userID)
}

func (s *SavedSearchService) UpdateSavedSearch(ctx context.Context, search models.SavedSearch, requesterID int) (models.SavedSearch, error) {
	current, err := s.SavedSearchRepo.GetSavedSearchByID(ctx, search.ID)
	if err != nil {
		return models.SavedSearch{}, err
	}
	if current.UserID != requesterID {
		return models.SavedSearch{}, ErrForbidden
	}
	search.UserID = current.UserID
	return s.SavedSearchRepo.UpdateSavedSearch(ctx, search)
}

func (s *SavedSearchService) DeleteSavedSearch(ctx context.Context, id, requesterID int) error {
	current, err := s.SavedSearchRepo.GetSavedSearchByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != requesterID {
		return ErrForbidden
	}
	return s.SavedSearchRepo.DeleteSavedSearch(ctx, id)
}
