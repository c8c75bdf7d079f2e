package repository

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// NotificationRepository puerto de persistencia del centro de notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	ListByUserEmail(ctx context.Context, email string) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
