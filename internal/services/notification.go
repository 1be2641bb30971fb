package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/api/middleware"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	"github.com/hungryup/hungryup-backend/pkg/sendGrid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendGrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendGrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

// SendEmail records the notification before attempting delivery; the row is
// the audit trail regardless of whether the provider accepts the message.
func (s *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	metadata, err := json.Marshal(req.Metadata)
	if err != nil {
		return nil, errors.InternalError("Failed to encode notification metadata").WithError(err)
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadata,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to record notification").WithError(err)
	}

	if err := s.emailService.Send(ctx, req); err != nil {

		logger.Error("email delivery failed", slog.String("recipient", req.To), slog.Any("error", err))

		if updateErr := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to mark notification failed", slog.Any("error", updateErr))
		}

		return nil, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	if err := s.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		logger.Error("failed to mark notification sent", slog.Any("error", err))
	}

	return &models.NotificationResponse{ID: notification.ID, Status: models.StatusSent}, nil
}
