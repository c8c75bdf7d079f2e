package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CandidateRepository define el puerto de persistencia para Candidate (directorio de candidatos).
// Los Get devuelven (nil, nil) si no existe.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *entity.Candidate) error
	GetByID(ctx context.Context, id int64) (*entity.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*entity.Candidate, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Candidate, error)
	UpdateProgress(ctx context.Context, id int64, progress int, lastActivity time.Time) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
	// AverageProgress media del progreso de todos los candidatos (0 si no hay ninguno).
	AverageProgress(ctx context.Context) (decimal.Decimal, error)
}
