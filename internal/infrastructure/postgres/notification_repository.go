package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo centro de notificaciones sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_email, type, title, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, n.UserEmail, n.Type, n.Title, n.Message, n.Read, n.CreatedAt).Scan(&n.ID); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	query := `SELECT id, user_email, type, title, message, read, created_at FROM notifications WHERE id = $1`
	n, err := scanNotification(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

// ListByUserEmail más recientes primero.
func (r *NotificationRepo) ListByUserEmail(ctx context.Context, email string) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_email, type, title, message, read, created_at
		FROM notifications WHERE lower(user_email) = lower($1)
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	out := []*entity.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) error {
	return r.execOne(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, `DELETE FROM notifications WHERE id = $1`, id)
}

func (r *NotificationRepo) execOne(ctx context.Context, query string, id int64) error {
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("notification %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notificación %d", domain.ErrNotFound, id)
	}
	return nil
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	if err := row.Scan(&n.ID, &n.UserEmail, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
