package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.StepRecordRepository = (*StepRecordRepo)(nil)

const stepColumns = `id, candidate_id, candidate_email, step_id, status, data, updated_at`

// StepRecordRepo registros de pasos sobre la tabla onboarding_steps (usable con pool o tx).
// La tabla no tiene unicidad por (candidato, paso): ambas políticas comparten esquema.
type StepRecordRepo struct {
	q Querier
}

// NewStepRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStepRecordRepository(q Querier) *StepRecordRepo {
	return &StepRecordRepo{q: q}
}

// Upsert bloquea la última fila de (key, stepID) con FOR UPDATE y la actualiza; si no hay, inserta.
func (r *StepRecordRepo) Upsert(ctx context.Context, key entity.CandidateKey, stepID, status string, data *string, at time.Time) (*entity.StepRecord, error) {
	cond, arg := keyFilter(key, "$1")
	query := `SELECT ` + stepColumns + ` FROM onboarding_steps
		WHERE ` + cond + ` AND step_id = $2
		ORDER BY updated_at DESC, id DESC
		LIMIT 1
		FOR UPDATE`
	cur, err := scanStep(r.q.QueryRow(ctx, query, arg, stepID))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("select step for update: %w", err)
	}
	if cur == nil {
		return r.insert(ctx, key, stepID, status, data, at)
	}
	cur.Status = status
	cur.Data = data
	cur.UpdatedAt = at
	if err := r.Save(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// Append inserta siempre una fila nueva.
func (r *StepRecordRepo) Append(ctx context.Context, key entity.CandidateKey, stepID, status string, data *string, at time.Time) (*entity.StepRecord, error) {
	return r.insert(ctx, key, stepID, status, data, at)
}

// FindLatestByCandidate DISTINCT ON (step_id) con el mismo orden que el desempate del dominio.
func (r *StepRecordRepo) FindLatestByCandidate(ctx context.Context, key entity.CandidateKey) (map[string]*entity.StepRecord, error) {
	cond, arg := keyFilter(key, "$1")
	query := `SELECT DISTINCT ON (step_id) ` + stepColumns + ` FROM onboarding_steps
		WHERE ` + cond + `
		ORDER BY step_id, updated_at DESC, id DESC`
	recs, err := r.list(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("find latest steps: %w", err)
	}
	latest := make(map[string]*entity.StepRecord, len(recs))
	for _, rec := range recs {
		latest[rec.StepID] = rec
	}
	return latest, nil
}

// FindByCandidateAndStep último registro de (key, stepID) o nil.
func (r *StepRecordRepo) FindByCandidateAndStep(ctx context.Context, key entity.CandidateKey, stepID string) (*entity.StepRecord, error) {
	cond, arg := keyFilter(key, "$1")
	query := `SELECT ` + stepColumns + ` FROM onboarding_steps
		WHERE ` + cond + ` AND step_id = $2
		ORDER BY updated_at DESC, id DESC
		LIMIT 1`
	rec, err := scanStep(r.q.QueryRow(ctx, query, arg, stepID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find step: %w", err)
	}
	return rec, nil
}

// ListByCandidate historial completo en orden de inserción.
func (r *StepRecordRepo) ListByCandidate(ctx context.Context, key entity.CandidateKey) ([]*entity.StepRecord, error) {
	cond, arg := keyFilter(key, "$1")
	recs, err := r.list(ctx, `SELECT `+stepColumns+` FROM onboarding_steps WHERE `+cond+` ORDER BY id`, arg)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	return recs, nil
}

// ListRecent más recientes primero; key nil = todos los candidatos.
func (r *StepRecordRepo) ListRecent(ctx context.Context, key *entity.CandidateKey, limit int) ([]*entity.StepRecord, error) {
	var (
		recs []*entity.StepRecord
		err  error
	)
	if key == nil {
		recs, err = r.list(ctx, `SELECT `+stepColumns+` FROM onboarding_steps
			ORDER BY updated_at DESC, id DESC LIMIT $1`, limit)
	} else {
		cond, arg := keyFilter(*key, "$1")
		recs, err = r.list(ctx, `SELECT `+stepColumns+` FROM onboarding_steps
			WHERE `+cond+` ORDER BY updated_at DESC, id DESC LIMIT $2`, arg, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list recent steps: %w", err)
	}
	return recs, nil
}

// Save persiste estado, data y fecha de una fila existente.
func (r *StepRecordRepo) Save(ctx context.Context, rec *entity.StepRecord) error {
	tag, err := r.q.Exec(ctx, `UPDATE onboarding_steps SET status = $2, data = $3, updated_at = $4 WHERE id = $1`,
		rec.ID, rec.Status, rec.Data, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update step: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: registro de paso %d", domain.ErrNotFound, rec.ID)
	}
	return nil
}

func (r *StepRecordRepo) insert(ctx context.Context, key entity.CandidateKey, stepID, status string, data *string, at time.Time) (*entity.StepRecord, error) {
	rec := &entity.StepRecord{
		CandidateID:    nullableID(key.ID),
		CandidateEmail: key.Email,
		StepID:         stepID,
		Status:         status,
		Data:           data,
		UpdatedAt:      at,
	}
	query := `
		INSERT INTO onboarding_steps (candidate_id, candidate_email, step_id, status, data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		rec.CandidateID, rec.CandidateEmail, rec.StepID, rec.Status, rec.Data, rec.UpdatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return nil, fmt.Errorf("insert step: %w", err)
	}
	return rec, nil
}

func (r *StepRecordRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StepRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*entity.StepRecord{}
	for rows.Next() {
		rec, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanStep(row pgx.Row) (*entity.StepRecord, error) {
	var rec entity.StepRecord
	if err := row.Scan(&rec.ID, &rec.CandidateID, &rec.CandidateEmail, &rec.StepID, &rec.Status, &rec.Data, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
