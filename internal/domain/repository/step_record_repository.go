package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// StepRecordRepository puerto de persistencia de StepRecord.
//
// Coincidencia de clave: si key.ID != 0 se filtra por candidate_id; si no, por candidate_email.
// Nunca se mezclan registros de claves distintas.
type StepRecordRepository interface {
	// Upsert actualiza en sitio el último registro de (key, stepID) o inserta uno nuevo.
	Upsert(ctx context.Context, key entity.CandidateKey, stepID, status string, data *string, at time.Time) (*entity.StepRecord, error)
	// Append inserta siempre un registro nuevo.
	Append(ctx context.Context, key entity.CandidateKey, stepID, status string, data *string, at time.Time) (*entity.StepRecord, error)
	// FindLatestByCandidate último registro por paso (mayor UpdatedAt, desempate por ID).
	FindLatestByCandidate(ctx context.Context, key entity.CandidateKey) (map[string]*entity.StepRecord, error)
	// FindByCandidateAndStep último registro de (key, stepID) o nil.
	FindByCandidateAndStep(ctx context.Context, key entity.CandidateKey, stepID string) (*entity.StepRecord, error)
	ListByCandidate(ctx context.Context, key entity.CandidateKey) ([]*entity.StepRecord, error)
	// ListRecent registros por UpdatedAt descendente; key nil = todos los candidatos.
	ListRecent(ctx context.Context, key *entity.CandidateKey, limit int) ([]*entity.StepRecord, error)
	// Save persiste estado/data/fecha de un registro existente.
	Save(ctx context.Context, rec *entity.StepRecord) error
}
