package dto

import "time"

// CreateNotificationRequest cuerpo de POST /api/notifications.
type CreateNotificationRequest struct {
	UserEmail string `json:"userEmail"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}

// NotificationResponse notificación in-app.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"userEmail"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
