package entity

import "time"

// Estados conocidos de un paso. Cualquier otro string se tolera y se conserva tal cual.
const (
	StepStatusPending   = "pending"
	StepStatusCompleted = "completed"
)

// UnknownCandidateEmail email centinela para registros cuyo candidato aún no se resuelve.
const UnknownCandidateEmail = "unknown@example.com"

// StepRecord registro con marca de tiempo del estado de un paso para un candidato.
// ID crece con cada inserción (desempate "el más reciente gana"); los placeholders de la
// línea de tiempo tienen ID 0 y nunca se persisten.
type StepRecord struct {
	ID             int64
	CandidateID    *int64
	CandidateEmail string
	StepID         string
	Status         string
	Data           *string // carga opaca, el motor no la interpreta
	UpdatedAt      time.Time
}

// IsPlaceholder indica si el registro fue sintetizado por la proyección.
func (r *StepRecord) IsPlaceholder() bool {
	return r.ID == 0
}

// Clone copia superficial con punteros propios (para stores en memoria).
func (r *StepRecord) Clone() *StepRecord {
	c := *r
	if r.CandidateID != nil {
		id := *r.CandidateID
		c.CandidateID = &id
	}
	if r.Data != nil {
		d := *r.Data
		c.Data = &d
	}
	return &c
}
