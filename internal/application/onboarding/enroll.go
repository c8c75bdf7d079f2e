package onboarding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	dom "github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Profile datos de alta de un candidato.
type Profile struct {
	Email      string
	FirstName  string
	LastName   string
	Position   string
	Department string
	StartDate  *time.Time
}

// Enrollment resultado del alta.
type Enrollment struct {
	Candidate *entity.Candidate
	User      *entity.User
	Login     *entity.StepRecord
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// EnrollCandidate da de alta candidato + usuario + paso "login" completado en una sola unidad
// de trabajo y después envía el correo de bienvenida. Si el correo falla los datos ya quedaron
// escritos y se devuelve el resultado junto con ErrNotificationDelivery.
func (uc *WorkflowUseCase) EnrollCandidate(ctx context.Context, p Profile) (*Enrollment, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Position = strings.TrimSpace(p.Position)
	p.Department = strings.TrimSpace(p.Department)
	if p.Email == "" || p.FirstName == "" {
		return nil, fmt.Errorf("%w: email y firstName son requeridos", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.FirstName+p.LastName), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var out Enrollment
	err = uc.tx.RunForCandidate(ctx, entity.ByEmail(p.Email).LockKey(), func(
		candidates repository.CandidateRepository,
		steps repository.StepRecordRepository,
		users repository.UserRepository,
	) error {
		exists, err := candidates.ExistsByEmail(ctx, p.Email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: ya existe un candidato con email %s", domain.ErrDuplicate, p.Email)
		}
		userExists, err := users.ExistsByEmail(ctx, p.Email)
		if err != nil {
			return err
		}
		if userExists {
			return fmt.Errorf("%w: ya existe un usuario con email %s", domain.ErrDuplicate, p.Email)
		}

		now := uc.now()
		cand := &entity.Candidate{
			Email:        p.Email,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Position:     p.Position,
			Department:   p.Department,
			StartDate:    p.StartDate,
			Status:       entity.CandidateStatusPending,
			Progress:     0,
			LastActivity: now,
		}
		if err := candidates.Create(ctx, cand); err != nil {
			return err
		}
		user := &entity.User{
			ID:           uuid.New().String(),
			Email:        p.Email,
			PasswordHash: string(hash),
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Position:     p.Position,
			Department:   p.Department,
			Role:         entity.RoleCandidate,
			CreatedAt:    now,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		login, err := steps.Append(ctx, cand.Key(), dom.StepLogin, entity.StepStatusCompleted, nil, now)
		if err != nil {
			return err
		}
		out = Enrollment{Candidate: cand, User: user, Login: login}
		return nil
	})
	if err != nil {
		return nil, storageErr(err)
	}
	uc.log.Info().Int64("candidate_id", out.Candidate.ID).Str("email", p.Email).Msg("candidato dado de alta")

	name := displayName(out.Candidate.FullName())
	if p.Position != "" && p.Department != "" {
		err = uc.notifier.NotifyOnboardingStartedDetailed(ctx, p.Email, name, p.Position, p.Department)
	} else {
		err = uc.notifier.NotifyOnboardingStarted(ctx, p.Email, name)
	}
	if err != nil {
		uc.log.Error().Err(err).Str("email", p.Email).Msg("fallo correo de bienvenida")
		return &out, fmt.Errorf("%w: %w", domain.ErrNotificationDelivery, err)
	}
	return &out, nil
}

// displayName capitaliza cada palabra para el saludo del correo. El perfil guardado conserva
// el nombre tal como se ingresó.
func displayName(s string) string {
	return titleCaser.String(strings.Join(strings.Fields(s), " "))
}
