// Package analytics contiene el resumen agregado del onboarding para RRHH.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

const summaryRecentActivity = 20

// SummaryUseCase conteo de candidatos por estado + actividad global reciente.
// Solo lectura; no toma la unidad de trabajo por candidato.
type SummaryUseCase struct {
	candidates repository.CandidateRepository
	steps      repository.StepRecordRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(candidates repository.CandidateRepository, steps repository.StepRecordRepository) *SummaryUseCase {
	return &SummaryUseCase{candidates: candidates, steps: steps}
}

// GetSummary lanza las consultas en paralelo; el primer error cancela las demás.
func (uc *SummaryUseCase) GetSummary(ctx context.Context) (*dto.HRSummaryResponse, error) {
	var (
		counts map[string]int
		avg    decimal.Decimal
		recent []*entity.StepRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = uc.candidates.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("summary: conteo por estado: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		avg, err = uc.candidates.AverageProgress(gctx)
		if err != nil {
			return fmt.Errorf("summary: progreso medio: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recent, err = uc.steps.ListRecent(gctx, nil, summaryRecentActivity)
		if err != nil {
			return fmt.Errorf("summary: actividad reciente: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byStatus := map[string]int{
		entity.CandidateStatusPending:   0,
		entity.CandidateStatusActive:    0,
		entity.CandidateStatusCompleted: 0,
	}
	total := 0
	for status, n := range counts {
		byStatus[status] += n
		total += n
	}
	return &dto.HRSummaryResponse{
		Total:           total,
		ByStatus:        byStatus,
		AverageProgress: avg,
		RecentActivity:  dto.ToStepRecordResponses(recent),
	}, nil
}
