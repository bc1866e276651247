package services

import (
	"context"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

type MessageService struct {
	MessageRepo  *repositories.MessageRepository
	ChatRepo     *repositories.ChatRepository
	Notification *NotificationService
}

// SendMessage persists a message after checking the sender belongs to the
// chat, and notifies the other side.
func (s *MessageService) SendMessage(ctx context.Context, chatID, senderID int, text string) (models.Message, error) {
	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return models.Message{}, err
	}

	var receiverID int
	switch senderID {
	case chat.User1ID:
		receiverID = chat.User2ID
	case chat.User2ID:
		receiverID = chat.User1ID
	default:
		return models.Message{}, ErrForbidden
	}

	message, err := s.MessageRepo.CreateMessage(ctx, models.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
	})
	if err != nil {
		return models.Message{}, err
	}

	_, _ = s.Notification.Notify(ctx, models.Notification{
		UserID: receiverID,
		Type:   models.NotificationTypeMessage,
		Title:  "New message",
		Body:   text,
		Link:   "/chats",
	})
	return message, nil
}

func (s *MessageService) GetMessagesForChat(ctx context.Context, chatID, requesterID, page, pageSize int) ([]models.Message, error) {
	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.User1ID != requesterID && chat.User2ID != requesterID {
		return nil, ErrForbidden
	}
	return s.MessageRepo.GetMessagesForChat(ctx, chatID, page, pageSize)
}

func (s *MessageService) MarkChatRead(ctx context.Context, chatID, userID int) error {
	return s.MessageRepo.MarkChatRead(ctx, chatID, userID)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID int) (int, error) {
	return s.MessageRepo.UnreadCount(ctx, userID)
}

func (s *MessageService) DeleteMessage(ctx context.Context, id, requesterID int) error {
	message, err := s.MessageRepo.GetMessageByID(ctx, id)
	if err != nil {
		return err
	}
	if message.SenderID != requesterID {
		return ErrForbidden
	}
	return s.MessageRepo.DeleteMessage(ctx, id)
}
