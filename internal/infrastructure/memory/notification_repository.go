package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

// NotificationRepository centro de notificaciones en memoria.
type NotificationRepository struct {
	s *Store
}

func (r *NotificationRepository) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextNotificationID++
	n.ID = r.s.nextNotificationID
	cp := *n
	r.s.notifications[n.ID] = &cp
	return nil
}

func (r *NotificationRepository) GetByID(_ context.Context, id int64) (*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

// ListByUserEmail más recientes primero.
func (r *NotificationRepository) ListByUserEmail(_ context.Context, email string) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Notification{}
	for _, n := range r.s.notifications {
		if strings.EqualFold(n.UserEmail, email) {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return fmt.Errorf("%w: notificación %d", domain.ErrNotFound, id)
	}
	n.Read = true
	return nil
}

func (r *NotificationRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notifications[id]; !ok {
		return fmt.Errorf("%w: notificación %d", domain.ErrNotFound, id)
	}
	delete(r.s.notifications, id)
	return nil
}
