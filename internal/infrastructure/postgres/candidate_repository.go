package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.CandidateRepository = (*CandidateRepo)(nil)

const candidateColumns = `id, email, first_name, last_name, position, department, start_date,
	status, progress, last_activity`

// CandidateRepo implementación de CandidateRepository sobre PostgreSQL (usable con pool o tx).
type CandidateRepo struct {
	q Querier
}

// NewCandidateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCandidateRepository(q Querier) *CandidateRepo {
	return &CandidateRepo{q: q}
}

// Create persiste un candidato y asigna su ID.
func (r *CandidateRepo) Create(ctx context.Context, c *entity.Candidate) error {
	query := `
		INSERT INTO candidates (email, first_name, last_name, position, department, start_date,
			status, progress, last_activity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.Email, c.FirstName, c.LastName, nullString(c.Position), nullString(c.Department), c.StartDate,
		c.Status, c.Progress, c.LastActivity,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: candidato %s", domain.ErrDuplicate, c.Email)
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// GetByID obtiene un candidato por ID. (nil, nil) si no existe.
func (r *CandidateRepo) GetByID(ctx context.Context, id int64) (*entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByEmail obtiene un candidato por email sin distinguir mayúsculas.
func (r *CandidateRepo) GetByEmail(ctx context.Context, email string) (*entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE lower(email) = lower($1)`
	return r.getOne(ctx, query, email)
}

// ExistsByEmail indica si ya hay un candidato con ese email.
func (r *CandidateRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM candidates WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists candidate: %w", err)
	}
	return exists, nil
}

// List candidatos ordenados por ID.
func (r *CandidateRepo) List(ctx context.Context, limit, offset int) ([]*entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()
	list := []*entity.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateProgress persiste el progreso derivado y la última actividad.
func (r *CandidateRepo) UpdateProgress(ctx context.Context, id int64, progress int, lastActivity time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE candidates SET progress = $2, last_activity = $3 WHERE id = $1`,
		id, progress, lastActivity)
	if err != nil {
		return fmt.Errorf("update candidate progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: candidato %d", domain.ErrNotFound, id)
	}
	return nil
}

// UpdateStatus cambia la fase de ciclo de vida.
func (r *CandidateRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE candidates SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update candidate status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: candidato %d", domain.ErrNotFound, id)
	}
	return nil
}

// CountByStatus número de candidatos por estado.
func (r *CandidateRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM candidates GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count candidates by status: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}

// AverageProgress NUMERIC → decimal.Decimal (codec registrado en el pool).
func (r *CandidateRepo) AverageProgress(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(ROUND(AVG(progress), 2), 0) FROM candidates`).Scan(&avg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("average progress: %w", err)
	}
	return avg, nil
}

func (r *CandidateRepo) getOne(ctx context.Context, query string, arg any) (*entity.Candidate, error) {
	c, err := scanCandidate(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

func scanCandidate(row pgx.Row) (*entity.Candidate, error) {
	var (
		c                    entity.Candidate
		position, department *string
	)
	err := row.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &position, &department, &c.StartDate,
		&c.Status, &c.Progress, &c.LastActivity)
	if err != nil {
		return nil, err
	}
	c.Position = derefString(position)
	c.Department = derefString(department)
	return &c, nil
}
