package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// StepRecordRepository
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_ActualizaEnSitio(t *testing.T) {
	ctx := context.Background()
	repo := New().Steps()
	key := entity.CandidateKey{ID: 7, Email: "ana@acme.com"}

	first, err := repo.Upsert(ctx, key, "forms", "pending", ptr("a"), t0)
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, key, "forms", "completed", ptr("b"), t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	all, err := repo.ListByCandidate(ctx, entity.ByID(7))
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "completed", all[0].Status)
	assert.Equal(t, "b", *all[0].Data)
}

func TestAppend_SiempreInsertaYGanaElUltimo(t *testing.T) {
	ctx := context.Background()
	repo := New().Steps()
	key := entity.CandidateKey{ID: 7, Email: "ana@acme.com"}

	_, err := repo.Append(ctx, key, "forms", "pending", nil, t0)
	require.NoError(t, err)
	_, err = repo.Append(ctx, key, "forms", "completed", nil, t0.Add(time.Minute))
	require.NoError(t, err)

	all, err := repo.ListByCandidate(ctx, entity.ByID(7))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	latest, err := repo.FindLatestByCandidate(ctx, entity.ByID(7))
	require.NoError(t, err)
	assert.Equal(t, "completed", latest["forms"].Status)
}

func TestAppend_EmpateDeFechaGanaIDMayor(t *testing.T) {
	ctx := context.Background()
	repo := New().Steps()
	key := entity.ByEmail("ana@acme.com")

	_, err := repo.Append(ctx, key, "offer", "completed", nil, t0)
	require.NoError(t, err)
	last, err := repo.Append(ctx, key, "offer", "pending", nil, t0)
	require.NoError(t, err)

	got, err := repo.FindByCandidateAndStep(ctx, key, "offer")
	require.NoError(t, err)
	assert.Equal(t, last.ID, got.ID)
	assert.Equal(t, "pending", got.Status)
}

func TestUpsert_NoMezclaClavesDistintas(t *testing.T) {
	ctx := context.Background()
	repo := New().Steps()

	_, err := repo.Upsert(ctx, entity.ByEmail("a@acme.com"), "forms", "completed", nil, t0)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, entity.ByEmail("b@acme.com"), "forms", "pending", nil, t0)
	require.NoError(t, err)

	a, err := repo.FindByCandidateAndStep(ctx, entity.ByEmail("a@acme.com"), "forms")
	require.NoError(t, err)
	assert.Equal(t, "completed", a.Status)
	none, err := repo.FindByCandidateAndStep(ctx, entity.ByID(1), "forms")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestListRecent_OrdenYLimite(t *testing.T) {
	ctx := context.Background()
	repo := New().Steps()
	for i := 0; i < 25; i++ {
		_, err := repo.Append(ctx, entity.ByEmail("x@acme.com"), "forms", "pending", nil, t0.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}
	recs, err := repo.ListRecent(ctx, nil, 20)
	require.NoError(t, err)
	require.Len(t, recs, 20)
	assert.Equal(t, t0.Add(24*time.Second), recs[0].UpdatedAt)
	for i := 1; i < len(recs); i++ {
		assert.False(t, recs[i].UpdatedAt.After(recs[i-1].UpdatedAt))
	}
}

func TestDevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := New().Steps()
	rec, err := repo.Append(ctx, entity.ByEmail("x@acme.com"), "forms", "pending", nil, t0)
	require.NoError(t, err)
	rec.Status = "mutado"

	got, err := repo.FindByCandidateAndStep(ctx, entity.ByEmail("x@acme.com"), "forms")
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraFilas(t *testing.T) {
	ctx := context.Background()
	s := New()
	cand := &entity.Candidate{Email: "ana@acme.com", Status: entity.CandidateStatusPending}
	require.NoError(t, s.Candidates().Create(ctx, cand))
	_, err := s.Steps().Upsert(ctx, cand.Key(), "forms", "pending", nil, t0)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = NewTxRunner(s).RunForCandidate(ctx, cand.Key().LockKey(), func(
		candidates repository.CandidateRepository,
		steps repository.StepRecordRepository,
		_ repository.UserRepository,
	) error {
		if _, err := steps.Upsert(ctx, cand.Key(), "forms", "completed", nil, t0.Add(time.Hour)); err != nil {
			return err
		}
		if _, err := steps.Append(ctx, cand.Key(), "offer", "completed", nil, t0.Add(time.Hour)); err != nil {
			return err
		}
		if err := candidates.UpdateProgress(ctx, cand.ID, 22, t0.Add(time.Hour)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := s.Steps().ListByCandidate(ctx, cand.Key())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "pending", all[0].Status)
	assert.Equal(t, t0, all[0].UpdatedAt)

	got, err := s.Candidates().GetByID(ctx, cand.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
}

func TestTxRunner_SerializaMismaClave(t *testing.T) {
	ctx := context.Background()
	s := New()
	runner := NewTxRunner(s)
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = runner.RunForCandidate(ctx, "candidate:1", func(_ repository.CandidateRepository, _ repository.StepRecordRepository, _ repository.UserRepository) error {
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Empty(t, s.locks.locks)
}

func TestCandidateRepository_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := New().Candidates()
	require.NoError(t, repo.Create(ctx, &entity.Candidate{Email: "ana@acme.com"}))
	err := repo.Create(ctx, &entity.Candidate{Email: "ANA@acme.com"})
	assert.Error(t, err)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[""])
}
