package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	dom "github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.StepRecordRepository = (*StepRecordRepository)(nil)

// StepRecordRepository registros de pasos en memoria. Devuelve siempre copias.
type StepRecordRepository struct {
	s    *Store
	undo *undoLog
}

func (r *StepRecordRepository) Upsert(_ context.Context, key entity.CandidateKey, stepID, status string, data *string, at time.Time) (*entity.StepRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur := dom.LatestByStep(r.s.stepsMatching(key))[stepID]; cur != nil {
		prev := cur.Clone()
		cur.Status = status
		cur.Data = cloneData(data)
		cur.UpdatedAt = at
		r.undo.add(func() { r.s.steps[prev.ID] = prev })
		return cur.Clone(), nil
	}
	return r.insert(key, stepID, status, data, at), nil
}

func (r *StepRecordRepository) Append(_ context.Context, key entity.CandidateKey, stepID, status string, data *string, at time.Time) (*entity.StepRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insert(key, stepID, status, data, at), nil
}

func (r *StepRecordRepository) FindLatestByCandidate(_ context.Context, key entity.CandidateKey) (map[string]*entity.StepRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	latest := dom.LatestByStep(r.s.stepsMatching(key))
	for id, rec := range latest {
		latest[id] = rec.Clone()
	}
	return latest, nil
}

func (r *StepRecordRepository) FindByCandidateAndStep(_ context.Context, key entity.CandidateKey, stepID string) (*entity.StepRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if rec := dom.LatestByStep(r.s.stepsMatching(key))[stepID]; rec != nil {
		return rec.Clone(), nil
	}
	return nil, nil
}

func (r *StepRecordRepository) ListByCandidate(_ context.Context, key entity.CandidateKey) ([]*entity.StepRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneSteps(r.s.stepsMatching(key)), nil
}

func (r *StepRecordRepository) ListRecent(_ context.Context, key *entity.CandidateKey, limit int) ([]*entity.StepRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var recs []*entity.StepRecord
	if key != nil {
		recs = r.s.stepsMatching(*key)
	} else {
		recs = make([]*entity.StepRecord, 0, len(r.s.steps))
		for _, rec := range r.s.steps {
			recs = append(recs, rec)
		}
	}
	return cloneSteps(dom.SortByRecency(recs, limit)), nil
}

func (r *StepRecordRepository) Save(_ context.Context, rec *entity.StepRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.steps[rec.ID]
	if !ok {
		return fmt.Errorf("%w: registro de paso %d", domain.ErrNotFound, rec.ID)
	}
	prev := cur.Clone()
	r.s.steps[rec.ID] = rec.Clone()
	r.undo.add(func() { r.s.steps[prev.ID] = prev })
	return nil
}

// insert requiere s.mu tomado.
func (r *StepRecordRepository) insert(key entity.CandidateKey, stepID, status string, data *string, at time.Time) *entity.StepRecord {
	r.s.nextStepID++
	rec := &entity.StepRecord{
		ID:             r.s.nextStepID,
		CandidateEmail: key.Email,
		StepID:         stepID,
		Status:         status,
		Data:           cloneData(data),
		UpdatedAt:      at,
	}
	if key.ID != 0 {
		id := key.ID
		rec.CandidateID = &id
	}
	r.s.steps[rec.ID] = rec
	id := rec.ID
	r.undo.add(func() { delete(r.s.steps, id) })
	return rec.Clone()
}

func cloneData(d *string) *string {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
