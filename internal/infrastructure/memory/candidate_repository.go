package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CandidateRepository = (*CandidateRepository)(nil)

// CandidateRepository implementación en memoria del directorio de candidatos.
type CandidateRepository struct {
	s    *Store
	undo *undoLog
}

// Create asigna ID y persiste. Email duplicado → ErrDuplicate.
func (r *CandidateRepository) Create(_ context.Context, c *entity.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.findByEmail(c.Email) != nil {
		return fmt.Errorf("%w: candidato %s", domain.ErrDuplicate, c.Email)
	}
	r.s.nextCandidateID++
	c.ID = r.s.nextCandidateID
	r.s.candidates[c.ID] = cloneCandidate(c)
	id := c.ID
	r.undo.add(func() { delete(r.s.candidates, id) })
	return nil
}

func (r *CandidateRepository) GetByID(_ context.Context, id int64) (*entity.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneCandidate(r.s.candidates[id]), nil
}

func (r *CandidateRepository) GetByEmail(_ context.Context, email string) (*entity.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneCandidate(r.findByEmail(email)), nil
}

func (r *CandidateRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.findByEmail(email) != nil, nil
}

// List ordenado por ID.
func (r *CandidateRepository) List(_ context.Context, limit, offset int) ([]*entity.Candidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Candidate, 0, len(r.s.candidates))
	for _, c := range r.s.candidates {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return []*entity.Candidate{}, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]*entity.Candidate, len(all))
	for i, c := range all {
		out[i] = cloneCandidate(c)
	}
	return out, nil
}

func (r *CandidateRepository) UpdateProgress(_ context.Context, id int64, progress int, lastActivity time.Time) error {
	return r.mutate(id, func(c *entity.Candidate) {
		c.Progress = progress
		c.LastActivity = lastActivity
	})
}

func (r *CandidateRepository) UpdateStatus(_ context.Context, id int64, status string) error {
	return r.mutate(id, func(c *entity.Candidate) { c.Status = status })
}

func (r *CandidateRepository) CountByStatus(_ context.Context) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]int)
	for _, c := range r.s.candidates {
		out[c.Status]++
	}
	return out, nil
}

// AverageProgress con dos decimales, igual que el ROUND(AVG(...), 2) de PostgreSQL.
func (r *CandidateRepository) AverageProgress(_ context.Context) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if len(r.s.candidates) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for _, c := range r.s.candidates {
		sum = sum.Add(decimal.NewFromInt(int64(c.Progress)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(r.s.candidates)))).Round(2), nil
}

func (r *CandidateRepository) mutate(id int64, fn func(c *entity.Candidate)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.candidates[id]
	if !ok {
		return fmt.Errorf("%w: candidato %d", domain.ErrNotFound, id)
	}
	prev := cloneCandidate(cur)
	fn(cur)
	r.undo.add(func() { r.s.candidates[id] = prev })
	return nil
}

// findByEmail requiere s.mu tomado.
func (r *CandidateRepository) findByEmail(email string) *entity.Candidate {
	for _, c := range r.s.candidates {
		if strings.EqualFold(c.Email, email) {
			return c
		}
	}
	return nil
}
