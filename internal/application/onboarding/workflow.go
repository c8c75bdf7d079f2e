// Package onboarding orquesta las transiciones de pasos: valida, escribe StepRecord según la
// política configurada, recalcula el progreso del candidato y dispara notificaciones.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	dom "github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// Límites de las consultas de actividad reciente.
const (
	CandidateActivityLimit = 10
	GlobalActivityLimit    = 20
)

// WorkflowUseCase motor de onboarding (actualización de pasos, forzado, enrolamiento, consultas).
type WorkflowUseCase struct {
	tx         TxRunner
	candidates repository.CandidateRepository
	steps      repository.StepRecordRepository
	notifier   Notifier
	policy     dom.StorePolicy
	log        *logger.Logger
	now        func() time.Time
}

// NewWorkflowUseCase construye el caso de uso. candidates/steps se usan para lecturas fuera de la
// unidad de trabajo; las escrituras pasan siempre por tx.
func NewWorkflowUseCase(
	tx TxRunner,
	candidates repository.CandidateRepository,
	steps repository.StepRecordRepository,
	notifier Notifier,
	policy dom.StorePolicy,
	log *logger.Logger,
) *WorkflowUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &WorkflowUseCase{
		tx:         tx,
		candidates: candidates,
		steps:      steps,
		notifier:   notifier,
		policy:     policy,
		log:        log.Component("onboarding"),
		now:        time.Now,
	}
}

// Policy política de escritura activa.
func (uc *WorkflowUseCase) Policy() dom.StorePolicy { return uc.policy }

// ReportStepUpdate registra el nuevo estado de un paso y recalcula el progreso del candidato
// si este se puede resolver. El recálculo siempre parte del estado completo, por lo que la
// operación es idempotente y segura de repetir.
func (uc *WorkflowUseCase) ReportStepUpdate(
	ctx context.Context,
	key entity.CandidateKey,
	stepID, status string,
	data *string,
) (*entity.StepRecord, error) {
	stepID = strings.TrimSpace(stepID)
	status = strings.TrimSpace(status)
	if stepID == "" || status == "" {
		return nil, fmt.Errorf("%w: stepId y status son requeridos", domain.ErrValidation)
	}
	if key.IsZero() {
		return nil, fmt.Errorf("%w: candidato requerido", domain.ErrValidation)
	}

	cand, err := uc.resolve(ctx, uc.candidates, key)
	if err != nil {
		return nil, err
	}
	writeKey := writeKeyFor(key, cand)

	var rec *entity.StepRecord
	err = uc.tx.RunForCandidate(ctx, writeKey.LockKey(), func(
		candidates repository.CandidateRepository,
		steps repository.StepRecordRepository,
		_ repository.UserRepository,
	) error {
		now := uc.now()
		var err error
		rec, err = uc.write(ctx, steps, writeKey, stepID, status, data, now)
		if err != nil {
			return err
		}
		if cand == nil {
			return nil
		}
		_, err = uc.recompute(ctx, candidates, steps, cand.ID, now)
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}

	uc.log.Info().
		Str("candidate", writeKey.String()).
		Str("step", stepID).
		Str("status", status).
		Str("policy", string(uc.policy)).
		Bool("resolved", cand != nil).
		Msg("paso actualizado")
	return rec, nil
}

// ForceCompleteStep marca como completado el registro existente de (key, stepID) sin tocar data.
// No envía notificación. ErrNotFound si no hay registro.
func (uc *WorkflowUseCase) ForceCompleteStep(ctx context.Context, key entity.CandidateKey, stepID string) (*entity.StepRecord, error) {
	stepID = strings.TrimSpace(stepID)
	if stepID == "" || key.IsZero() {
		return nil, fmt.Errorf("%w: candidato y stepId son requeridos", domain.ErrValidation)
	}
	uc.log.Info().Str("candidate", key.String()).Str("step", stepID).Msg("forzando paso a completed")

	cand, err := uc.resolve(ctx, uc.candidates, key)
	if err != nil {
		return nil, err
	}
	lockKey := writeKeyFor(key, cand).LockKey()

	var rec *entity.StepRecord
	err = uc.tx.RunForCandidate(ctx, lockKey, func(
		candidates repository.CandidateRepository,
		steps repository.StepRecordRepository,
		_ repository.UserRepository,
	) error {
		existing, err := steps.FindByCandidateAndStep(ctx, key, stepID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: paso %q para %s", domain.ErrNotFound, stepID, key)
		}
		now := uc.now()
		existing.Status = entity.StepStatusCompleted
		existing.UpdatedAt = now
		if err := steps.Save(ctx, existing); err != nil {
			return err
		}
		rec = existing
		if cand == nil {
			return nil
		}
		_, err = uc.recompute(ctx, candidates, steps, cand.ID, now)
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return rec, nil
}

// ReportStepCompleted efectos laterales de un paso completado: "forms" pasa el candidato a
// active y "gamification" a completed (independiente del porcentaje); luego notifica por correo.
// Si la clave es numérica se resuelve a email; si no existe → ErrNotFound y no se envía nada.
func (uc *WorkflowUseCase) ReportStepCompleted(ctx context.Context, keyOrEmail, stepID string) error {
	keyOrEmail = strings.TrimSpace(keyOrEmail)
	stepID = strings.TrimSpace(stepID)
	if keyOrEmail == "" || stepID == "" {
		return fmt.Errorf("%w: email y step son requeridos", domain.ErrValidation)
	}

	key, numeric := ParseCandidateKey(keyOrEmail)
	cand, err := uc.resolve(ctx, uc.candidates, key)
	if err != nil {
		return err
	}
	if numeric && cand == nil {
		return fmt.Errorf("%w: candidato %s", domain.ErrNotFound, keyOrEmail)
	}

	if status := lifecycleStatusFor(stepID); status != "" {
		if cand == nil {
			return fmt.Errorf("%w: candidato %s", domain.ErrNotFound, keyOrEmail)
		}
		err := uc.tx.RunForCandidate(ctx, cand.Key().LockKey(), func(
			candidates repository.CandidateRepository,
			_ repository.StepRecordRepository,
			_ repository.UserRepository,
		) error {
			return candidates.UpdateStatus(ctx, cand.ID, status)
		})
		if err != nil {
			return storageErr(err)
		}
		uc.log.Info().Int64("candidate_id", cand.ID).Str("status", status).Msg("estado de ciclo de vida actualizado")
	}

	email := keyOrEmail
	if cand != nil {
		email = cand.Email
	}
	if err := uc.notifier.NotifyStepCompleted(ctx, email, dom.StepTitle(stepID)); err != nil {
		uc.log.Error().Err(err).Str("email", email).Str("step", stepID).Msg("fallo notificación de paso completado")
		return fmt.Errorf("%w: %w", domain.ErrNotificationDelivery, err)
	}
	return nil
}

// RecomputeProgress vuelve a derivar y persistir el progreso de un candidato.
func (uc *WorkflowUseCase) RecomputeProgress(ctx context.Context, candidateID int64) (int, error) {
	cand, err := uc.resolve(ctx, uc.candidates, entity.ByID(candidateID))
	if err != nil {
		return 0, err
	}
	if cand == nil {
		return 0, fmt.Errorf("%w: candidato %d", domain.ErrNotFound, candidateID)
	}
	var progress int
	err = uc.tx.RunForCandidate(ctx, cand.Key().LockKey(), func(
		candidates repository.CandidateRepository,
		steps repository.StepRecordRepository,
		_ repository.UserRepository,
	) error {
		var err error
		progress, err = uc.recompute(ctx, candidates, steps, cand.ID, uc.now())
		return err
	})
	if err != nil {
		return 0, storageErr(err)
	}
	return progress, nil
}

// write aplica la política configurada.
func (uc *WorkflowUseCase) write(
	ctx context.Context,
	steps repository.StepRecordRepository,
	key entity.CandidateKey,
	stepID, status string,
	data *string,
	now time.Time,
) (*entity.StepRecord, error) {
	if uc.policy == dom.PolicyAppend {
		return steps.Append(ctx, key, stepID, status, data, now)
	}
	return steps.Upsert(ctx, key, stepID, status, data, now)
}

// recompute deriva el progreso desde el último registro de cada paso y lo persiste junto con
// lastActivity. Debe ejecutarse dentro de la unidad de trabajo del candidato.
func (uc *WorkflowUseCase) recompute(
	ctx context.Context,
	candidates repository.CandidateRepository,
	steps repository.StepRecordRepository,
	candidateID int64,
	now time.Time,
) (int, error) {
	latest, err := steps.FindLatestByCandidate(ctx, entity.ByID(candidateID))
	if err != nil {
		return 0, err
	}
	progress := dom.ComputeProgress(dom.StepIDs(), latest)
	if err := candidates.UpdateProgress(ctx, candidateID, progress, now); err != nil {
		return 0, err
	}
	return progress, nil
}

// resolve busca el candidato por ID (autoritativo) o email. (nil, nil) si no existe.
func (uc *WorkflowUseCase) resolve(ctx context.Context, repo repository.CandidateRepository, key entity.CandidateKey) (*entity.Candidate, error) {
	var (
		cand *entity.Candidate
		err  error
	)
	switch {
	case key.ID != 0:
		cand, err = repo.GetByID(ctx, key.ID)
	case key.Email != "":
		cand, err = repo.GetByEmail(ctx, key.Email)
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return cand, nil
}

// writeKeyFor clave con la que se escriben registros: la canónica del candidato si se resolvió
// (ID + email, nunca solo email); si no, la suministrada con el email centinela para claves por ID.
func writeKeyFor(key entity.CandidateKey, cand *entity.Candidate) entity.CandidateKey {
	if cand != nil {
		return cand.Key()
	}
	if key.ID != 0 && key.Email == "" {
		return entity.CandidateKey{ID: key.ID, Email: entity.UnknownCandidateEmail}
	}
	return key
}

// ParseCandidateKey interpreta "123" como ID y cualquier otra cosa como email.
// El segundo valor indica si la clave era numérica.
func ParseCandidateKey(s string) (entity.CandidateKey, bool) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
		return entity.ByID(id), true
	}
	return entity.ByEmail(s), false
}

// lifecycleStatusFor transiciones de fase ligadas a pasos concretos.
func lifecycleStatusFor(stepID string) string {
	switch strings.ToLower(stepID) {
	case dom.StepForms:
		return entity.CandidateStatusActive
	case dom.StepGamification:
		return entity.CandidateStatusCompleted
	}
	return ""
}

// storageErr conserva los errores de dominio y clasifica el resto como fallo de almacenamiento.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		domain.ErrValidation, domain.ErrNotFound, domain.ErrDuplicate,
		domain.ErrNotificationDelivery, domain.ErrStorage,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}
