package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository usuarios en memoria indexados por email.
type UserRepository struct {
	s    *Store
	undo *undoLog
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := strings.ToLower(u.Email)
	if _, ok := r.s.users[k]; ok {
		return fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, u.Email)
	}
	cp := *u
	r.s.users[k] = &cp
	r.undo.add(func() { delete(r.s.users, k) })
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[strings.ToLower(email)]
	return ok, nil
}
