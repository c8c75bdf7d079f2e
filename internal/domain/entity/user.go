package entity

import "time"

// Roles válidos para User.
const (
	RoleCandidate = "candidate"
	RoleHR        = "hr"
	RoleAdmin     = "admin"
)

// User cuenta de acceso (candidato o personal de RRHH).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Position     string
	Department   string
	Role         string // candidate, hr, admin
	CreatedAt    time.Time
}
