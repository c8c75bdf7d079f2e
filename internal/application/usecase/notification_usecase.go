package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

// NotificationUseCase centro de notificaciones in-app.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso con el puerto de persistencia.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListForUser notificaciones del usuario, más recientes primero.
func (uc *NotificationUseCase) ListForUser(ctx context.Context, email string) ([]dto.NotificationResponse, error) {
	list, err := uc.repo.ListByUserEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.ToNotificationResponse(n))
	}
	return out, nil
}

// Create registra una notificación no leída. Solo el personal de RRHH puede crearla para otro
// usuario; ErrForbidden en caso contrario.
func (uc *NotificationUseCase) Create(ctx context.Context, in dto.CreateNotificationRequest, callerEmail string, staff bool) (*dto.NotificationResponse, error) {
	if strings.TrimSpace(in.UserEmail) == "" || strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: userEmail y title son requeridos", domain.ErrValidation)
	}
	if !staff && !strings.EqualFold(strings.TrimSpace(in.UserEmail), callerEmail) {
		return nil, fmt.Errorf("%w: notificación para otro usuario", domain.ErrForbidden)
	}
	typ := in.Type
	if typ == "" {
		typ = "info"
	}
	n := &entity.Notification{
		UserEmail: strings.TrimSpace(in.UserEmail),
		Type:      typ,
		Title:     in.Title,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	out := dto.ToNotificationResponse(n)
	return &out, nil
}

// MarkRead marca como leída. ErrNotFound si no existe; ErrForbidden si pertenece a otro usuario
// y el llamador no es personal de RRHH.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id int64, callerEmail string, staff bool) (*dto.NotificationResponse, error) {
	n, err := uc.owned(ctx, id, callerEmail, staff)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n.Read = true
	out := dto.ToNotificationResponse(n)
	return &out, nil
}

// Delete elimina la notificación con las mismas reglas de propiedad que MarkRead.
func (uc *NotificationUseCase) Delete(ctx context.Context, id int64, callerEmail string, staff bool) error {
	if _, err := uc.owned(ctx, id, callerEmail, staff); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *NotificationUseCase) owned(ctx context.Context, id int64, callerEmail string, staff bool) (*entity.Notification, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: notificación %d", domain.ErrNotFound, id)
	}
	if !staff && !strings.EqualFold(n.UserEmail, callerEmail) {
		return nil, domain.ErrForbidden
	}
	return n, nil
}
