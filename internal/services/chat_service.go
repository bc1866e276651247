package services

import (
	"context"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

type ChatService struct {
	ChatRepo    *repositories.ChatRepository
	ListingRepo *repositories.ListingRepository
}

// StartChat opens (or finds) the conversation between the requester and the
// owner of the listing.
func (s *ChatService) StartChat(ctx context.Context, listingID, requesterID int) (int, error) {
	listing, err := s.ListingRepo.GetListingByID(ctx, listingID, 0)
	if err != nil {
		return 0, err
	}
	if listing.UserID == requesterID {
		return 0, ErrOwnListing
	}
	return s.ChatRepo.FindOrCreateChat(ctx, requesterID, listing.UserID, &listingID)
}

func (s *ChatService) GetChatsByUserID(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	return s.ChatRepo.GetChatsByUserID(ctx, userID)
}

func (s *ChatService) GetChatByID(ctx context.Context, id, requesterID int) (models.Chat, error) {
	chat, err := s.ChatRepo.GetChatByID(ctx, id)
	if err != nil {
		return models.Chat{}, err
	}
	if chat.User1ID != requesterID && chat.User2ID != requesterID {
		return models.Chat{}, ErrForbidden
	}
	return chat, nil
}

func (s *ChatService) DeleteChat(ctx context.Context, id, requesterID int) error {
	chat, err := s.ChatRepo.GetChatByID(ctx, id)
	if err != nil {
		return err
	}
	if chat.User1ID != requesterID && chat.User2ID != requesterID {
		return ErrForbidden
	}
	return s.ChatRepo.DeleteChat(ctx, id)
}
