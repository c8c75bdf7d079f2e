package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/memory"
	"github.com/jhoicas/Onboarding-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*AuthUseCase, *memory.Store) {
	t.Helper()
	s := memory.New()
	return NewAuthUseCase(s.Users(), s.Candidates(), JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"}), s
}

func TestLogin_CandidatoIncluyeCandidateID(t *testing.T) {
	ctx := context.Background()
	uc, s := newAuth(t)
	cand := &entity.Candidate{Email: "ana@acme.com", FirstName: "Ana"}
	require.NoError(t, s.Candidates().Create(ctx, cand))
	hash, err := bcrypt.GenerateFromPassword([]byte("AnaRuiz"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "ana@acme.com", PasswordHash: string(hash), Role: entity.RoleCandidate}))

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@acme.com", Password: "AnaRuiz"})
	require.NoError(t, err)
	assert.Equal(t, cand.ID, out.CandidateID)

	id, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCandidate, id.Role)
	assert.Equal(t, cand.ID, id.CandidateID)
	assert.Equal(t, "ana@acme.com", id.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth(t)
	_, err := uc.CreateStaffUser(ctx, dto.CreateUserRequest{Email: "hr@acme.com", Password: "supersecret", FirstName: "Rita", Role: entity.RoleHR})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "hr@acme.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@acme.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "hr@acme.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Zero(t, out.CandidateID)
	assert.Equal(t, entity.RoleHR, out.User.Role)
}

func TestCreateStaffUser_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth(t)

	_, err := uc.CreateStaffUser(ctx, dto.CreateUserRequest{Email: "x@acme.com", Password: "corta", Role: entity.RoleHR})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.CreateStaffUser(ctx, dto.CreateUserRequest{Email: "x@acme.com", Password: "supersecret", Role: entity.RoleCandidate})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateStaffUser(ctx, dto.CreateUserRequest{Email: "x@acme.com", Password: "supersecret", Role: entity.RoleAdmin})
	require.NoError(t, err)
	_, err = uc.CreateStaffUser(ctx, dto.CreateUserRequest{Email: "X@acme.com", Password: "supersecret", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
