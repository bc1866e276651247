package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
)

// NotificationService stores notifications and mirrors them to FCM when the
// recipient has a registered device token. FCMClient may be nil, in which
// case only the in-app feed is written.
type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
	UserRepo         *repositories.UserRepository
	FCMClient        *messaging.Client
	ErrorLog         *log.Logger
}

func (s *NotificationService) Notify(ctx context.Context, n models.Notification) (models.Notification, error) {
	created, err := s.NotificationRepo.CreateNotification(ctx, n)
	if err != nil {
		return models.Notification{}, err
	}

	s.push(ctx, created)
	return created, nil
}

func (s *NotificationService) push(ctx context.Context, n models.Notification) {
	if s.FCMClient == nil {
		return
	}

	user, err := s.UserRepo.GetUserByID(ctx, n.UserID)
	if err != nil || user.FCMToken == nil || *user.FCMToken == "" {
		return
	}

	message := &messaging.Message{
		Token: *user.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: map[string]string{
			"type": n.Type,
			"link": n.Link,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: n.Title,
						Body:  n.Body,
					},
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.FCMClient.Send(ctx, message); err != nil && s.ErrorLog != nil {
		s.ErrorLog.Printf("fcm send to user %d: %v", n.UserID, err)
	}
}

func (s *NotificationService) GetNotificationsByUser(ctx context.Context, userID, page, limit int) ([]models.Notification, error) {
	return s.NotificationRepo.GetNotificationsByUser(ctx, userID, page, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int) error {
	return s.NotificationRepo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) error {
	return s.NotificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int) (int, error) {
	return s.NotificationRepo.UnreadCount(ctx, userID)
}
