package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores los envuelven con %w; la capa HTTP los clasifica con errors.Is.
var (
	ErrValidation           = errors.New("entrada inválida")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrNotificationDelivery = errors.New("no se pudo enviar la notificación")
	ErrStorage              = errors.New("almacenamiento no disponible")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)
