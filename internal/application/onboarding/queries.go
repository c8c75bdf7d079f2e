package onboarding

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	dom "github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
)

// LatestSteps último registro de cada paso que tenga al menos un registro para el email,
// en orden del flujo (pasos desconocidos al final, por id).
func (uc *WorkflowUseCase) LatestSteps(ctx context.Context, email string) ([]*entity.StepRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email requerido", domain.ErrValidation)
	}
	latest, err := uc.steps.FindLatestByCandidate(ctx, entity.ByEmail(email))
	if err != nil {
		return nil, storageErr(err)
	}
	return orderByWorkflow(latest), nil
}

// Timeline exactamente un registro por paso definido para el candidato, con placeholders
// "pending" para los pasos sin registro. Un candidato sin registros obtiene solo placeholders.
func (uc *WorkflowUseCase) Timeline(ctx context.Context, candidateID int64) ([]*entity.StepRecord, error) {
	if candidateID <= 0 {
		return nil, fmt.Errorf("%w: candidateId inválido", domain.ErrValidation)
	}
	latest, err := uc.steps.FindLatestByCandidate(ctx, entity.ByID(candidateID))
	if err != nil {
		return nil, storageErr(err)
	}
	fallback := ""
	cand, err := uc.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, storageErr(err)
	}
	if cand != nil {
		fallback = cand.Email
	}
	id := candidateID
	return dom.ProjectFullTimeline(dom.Steps(), latest, &id, fallback, uc.now()), nil
}

// RecentActivities registros más recientes del candidato (máx. 10).
func (uc *WorkflowUseCase) RecentActivities(ctx context.Context, email string) ([]*entity.StepRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email requerido", domain.ErrValidation)
	}
	key := entity.ByEmail(email)
	recs, err := uc.steps.ListRecent(ctx, &key, CandidateActivityLimit)
	if err != nil {
		return nil, storageErr(err)
	}
	return dom.SortByRecency(recs, CandidateActivityLimit), nil
}

// AllRecentActivities registros más recientes de todos los candidatos (máx. 20).
func (uc *WorkflowUseCase) AllRecentActivities(ctx context.Context) ([]*entity.StepRecord, error) {
	recs, err := uc.steps.ListRecent(ctx, nil, GlobalActivityLimit)
	if err != nil {
		return nil, storageErr(err)
	}
	return dom.SortByRecency(recs, GlobalActivityLimit), nil
}

// Candidate devuelve el candidato o ErrNotFound.
func (uc *WorkflowUseCase) Candidate(ctx context.Context, id int64) (*entity.Candidate, error) {
	cand, err := uc.resolve(ctx, uc.candidates, entity.ByID(id))
	if err != nil {
		return nil, err
	}
	if cand == nil {
		return nil, fmt.Errorf("%w: candidato %d", domain.ErrNotFound, id)
	}
	return cand, nil
}

// ListCandidates directorio paginado.
func (uc *WorkflowUseCase) ListCandidates(ctx context.Context, limit, offset int) ([]*entity.Candidate, error) {
	list, err := uc.candidates.List(ctx, limit, offset)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

func orderByWorkflow(latest map[string]*entity.StepRecord) []*entity.StepRecord {
	out := make([]*entity.StepRecord, 0, len(latest))
	for _, id := range dom.StepIDs() {
		if rec, ok := latest[id]; ok && rec != nil {
			out = append(out, rec)
		}
	}
	var extra []string
	for id := range latest {
		if !dom.IsKnownStep(id) {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		out = append(out, latest[id])
	}
	return out
}
