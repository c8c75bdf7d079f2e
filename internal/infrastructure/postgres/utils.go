package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// keyFilter condición SQL y argumento para una CandidateKey: candidate_id si hay ID,
// si no el email sin distinguir mayúsculas. placeholder es el número de parámetro ($n).
func keyFilter(key entity.CandidateKey, placeholder string) (string, any) {
	if key.ID != 0 {
		return "candidate_id = " + placeholder, key.ID
	}
	return "lower(candidate_email) = lower(" + placeholder + ")", key.Email
}

// nullableID *int64 para columnas BIGINT que admiten NULL.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// nullString "" → NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
