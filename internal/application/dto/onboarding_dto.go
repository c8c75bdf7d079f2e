package dto

import (
	"encoding/json"
	"time"
)

// StepUpdateRequest cuerpo de POST /api/onboarding/:candidateId/step.
// Data se acepta como cualquier JSON y se guarda como texto opaco.
type StepUpdateRequest struct {
	StepID string          `json:"stepId"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// StepCompletedRequest cuerpo de POST /api/onboarding/step-completed.
// Email admite también el ID numérico del candidato.
type StepCompletedRequest struct {
	Email string `json:"email"`
	Step  string `json:"step"`
}

// StepRecordResponse registro de paso (o placeholder con id 0).
type StepRecordResponse struct {
	ID             int64     `json:"id"`
	CandidateID    *int64    `json:"candidateId"`
	CandidateEmail string    `json:"candidateEmail"`
	StepID         string    `json:"stepId"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	Data           *string   `json:"data"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// MessageResponse respuesta de éxito simple.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StepUpdateResponse resultado de una actualización de paso.
type StepUpdateResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Step    StepRecordResponse `json:"step"`
}
