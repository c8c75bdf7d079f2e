package dto

import "time"

// EnrollCandidateRequest cuerpo de POST /api/candidates/add. StartDate en formato YYYY-MM-DD.
type EnrollCandidateRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	StartDate  string `json:"startDate"`
}

// CandidateResponse candidato del directorio.
type CandidateResponse struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Position     string     `json:"position"`
	Department   string     `json:"department"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	LastActivity time.Time  `json:"lastActivity"`
}

// EnrollCandidateResponse resultado del alta.
type EnrollCandidateResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Candidate CandidateResponse `json:"candidate"`
}

// CandidateListResponse listado paginado.
type CandidateListResponse struct {
	Items []CandidateResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
