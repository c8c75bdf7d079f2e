package onboarding

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

// TxRunner ejecuta fn como una unidad de trabajo serializada por candidato: mismo lockKey
// nunca se intercala y un error deshace todas las escrituras de fn.
// Garantiza "escribir paso → leer pasos → escribir progreso" sin actualizaciones perdidas.
type TxRunner interface {
	RunForCandidate(ctx context.Context, lockKey string, fn func(
		candidates repository.CandidateRepository,
		steps repository.StepRecordRepository,
		users repository.UserRepository,
	) error) error
}

// Notifier colaborador de notificaciones al usuario (correo). No reintenta.
type Notifier interface {
	NotifyOnboardingStarted(ctx context.Context, email, name string) error
	NotifyOnboardingStartedDetailed(ctx context.Context, email, name, position, department string) error
	NotifyStepCompleted(ctx context.Context, email, stepTitle string) error
}
