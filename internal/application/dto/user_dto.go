package dto

import "time"

// CreateUserRequest alta de personal (hr/admin) desde el CLI o la API.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + datos de perfil. CandidateID solo para el rol candidate.
type LoginResponse struct {
	Token       string       `json:"token"`
	User        UserResponse `json:"user"`
	CandidateID int64        `json:"candidateId,omitempty"`
}
