package entity

import (
	"strconv"
	"strings"
	"time"
)

// Estados de ciclo de vida del candidato (fase gruesa, independiente del porcentaje).
const (
	CandidateStatusPending   = "pending"
	CandidateStatusActive    = "active"
	CandidateStatusCompleted = "completed"
)

// Candidate representa a la persona que recorre el flujo de onboarding.
// Progress es una caché derivada de los StepRecord; se recalcula en cada mutación de pasos.
type Candidate struct {
	ID           int64
	Email        string // único
	FirstName    string
	LastName     string
	Position     string
	Department   string
	StartDate    *time.Time
	Status       string // pending, active, completed
	Progress     int    // 0..100
	LastActivity time.Time
}

// FullName nombre y apellido separados por espacio (sin espacios sobrantes).
func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Key devuelve la clave canónica del candidato (ID + email).
func (c *Candidate) Key() CandidateKey {
	return CandidateKey{ID: c.ID, Email: c.Email}
}

// CandidateKey identifica a un candidato por ID (autoritativo) o por email (índice secundario).
type CandidateKey struct {
	ID    int64
	Email string
}

// ByID construye una clave por ID.
func ByID(id int64) CandidateKey { return CandidateKey{ID: id} }

// ByEmail construye una clave por email.
func ByEmail(email string) CandidateKey { return CandidateKey{Email: email} }

// IsZero indica que la clave no identifica a nadie.
func (k CandidateKey) IsZero() bool {
	return k.ID == 0 && k.Email == ""
}

// LockKey clave estable para serializar unidades de trabajo del mismo candidato.
func (k CandidateKey) LockKey() string {
	if k.ID != 0 {
		return "candidate:" + strconv.FormatInt(k.ID, 10)
	}
	return "candidate:" + strings.ToLower(k.Email)
}

func (k CandidateKey) String() string {
	if k.ID != 0 {
		return strconv.FormatInt(k.ID, 10)
	}
	return k.Email
}
