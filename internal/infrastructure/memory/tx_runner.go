package memory

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

// TxRunner unidad de trabajo en memoria: exclusión por clave de candidato y deshacer ante error.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunForCandidate ejecuta fn con repositorios que registran operaciones inversas; si fn
// devuelve error (o hace panic) se restauran las filas previas.
func (t *TxRunner) RunForCandidate(ctx context.Context, lockKey string, fn func(
	candidates repository.CandidateRepository,
	steps repository.StepRecordRepository,
	users repository.UserRepository,
) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock := t.s.locks.Lock(lockKey)
	defer unlock()

	undo := &undoLog{}
	defer func() {
		if p := recover(); p != nil {
			t.s.rollback(undo)
			panic(p)
		}
		if err != nil {
			t.s.rollback(undo)
		}
	}()
	return fn(
		&CandidateRepository{s: t.s, undo: undo},
		&StepRecordRepository{s: t.s, undo: undo},
		&UserRepository{s: t.s, undo: undo},
	)
}
