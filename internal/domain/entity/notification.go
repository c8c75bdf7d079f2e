package entity

import "time"

// Notification aviso in-app para un usuario (centro de notificaciones).
type Notification struct {
	ID        int64
	UserEmail string
	Type      string // info, success, warning...
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
