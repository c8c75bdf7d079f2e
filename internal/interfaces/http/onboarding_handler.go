package http

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// OnboardingHandler expone el motor de pasos y progreso.
type OnboardingHandler struct {
	uc *onboarding.WorkflowUseCase
}

// NewOnboardingHandler construye el handler.
func NewOnboardingHandler(uc *onboarding.WorkflowUseCase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

// LatestSteps godoc
// @Summary      Último estado de cada paso del candidato
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        candidateEmail  path  string  true  "Email del candidato"
// @Success      200  {array}  dto.StepRecordResponse
// @Router       /api/onboarding/{candidateEmail} [get]
func (h *OnboardingHandler) LatestSteps(c *fiber.Ctx) error {
	email := c.Params("candidateEmail")
	if !canAccess(c, entity.ByEmail(email)) {
		return forbidden(c)
	}
	recs, err := h.uc.LatestSteps(c.UserContext(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStepRecordResponses(recs))
}

// Timeline godoc
// @Summary      Los 9 pasos del candidato (pendientes incluidos)
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        candidateId  path  int  true  "ID del candidato"
// @Success      200  {array}  dto.StepRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/onboarding/by-id/{candidateId} [get]
func (h *OnboardingHandler) Timeline(c *fiber.Ctx) error {
	id, ok := paramID(c, "candidateId")
	if !ok {
		return badRequest(c, "INVALID_ID", "candidateId debe ser numérico")
	}
	if !canAccess(c, entity.ByID(id)) {
		return forbidden(c)
	}
	recs, err := h.uc.Timeline(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStepRecordResponses(recs))
}

// RecentActivities godoc
// @Summary      Actividad reciente del candidato (máx. 10)
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        candidateEmail  path  string  true  "Email del candidato"
// @Success      200  {array}  dto.StepRecordResponse
// @Router       /api/onboarding/{candidateEmail}/activities [get]
func (h *OnboardingHandler) RecentActivities(c *fiber.Ctx) error {
	email := c.Params("candidateEmail")
	if !canAccess(c, entity.ByEmail(email)) {
		return forbidden(c)
	}
	recs, err := h.uc.RecentActivities(c.UserContext(), email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStepRecordResponses(recs))
}

// AllRecentActivities godoc
// @Summary      Actividad reciente de todos los candidatos (máx. 20)
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StepRecordResponse
// @Router       /api/onboarding/activities/all [get]
func (h *OnboardingHandler) AllRecentActivities(c *fiber.Ctx) error {
	recs, err := h.uc.AllRecentActivities(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToStepRecordResponses(recs))
}

// UpdateStep godoc
// @Summary      Reportar el estado de un paso
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        candidateId  path  string                 true  "ID o email del candidato"
// @Param        body         body  dto.StepUpdateRequest  true  "stepId, status, data"
// @Success      200  {object}  dto.StepUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/onboarding/{candidateId}/step [post]
func (h *OnboardingHandler) UpdateStep(c *fiber.Ctx) error {
	key, _ := onboarding.ParseCandidateKey(c.Params("candidateId"))
	if !canAccess(c, key) {
		return forbidden(c)
	}
	var in dto.StepUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	rec, err := h.uc.ReportStepUpdate(c.UserContext(), key, in.StepID, in.Status, opaqueData(in.Data))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StepUpdateResponse{
		Success: true,
		Message: "Step updated successfully",
		Step:    dto.ToStepRecordResponse(rec),
	})
}

// ForceComplete godoc
// @Summary      Forzar un paso a completed (RRHH)
// @Tags         onboarding
// @Security     Bearer
// @Produce      json
// @Param        candidateEmail  path   string  true  "Email o ID del candidato"
// @Param        stepId          query  string  true  "Paso"
// @Success      200  {object}  dto.StepUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/onboarding/{candidateEmail}/force-complete [post]
func (h *OnboardingHandler) ForceComplete(c *fiber.Ctx) error {
	key, _ := onboarding.ParseCandidateKey(c.Params("candidateEmail"))
	rec, err := h.uc.ForceCompleteStep(c.UserContext(), key, c.Query("stepId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return badRequest(c, "STEP_NOT_FOUND", "step not found")
		}
		return writeError(c, err)
	}
	return c.JSON(dto.StepUpdateResponse{
		Success: true,
		Message: "Step force-completed",
		Step:    dto.ToStepRecordResponse(rec),
	})
}

// StepCompleted godoc
// @Summary      Notificar paso completado (correo + ciclo de vida)
// @Tags         onboarding
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StepCompletedRequest  true  "email (o ID) y step"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/onboarding/step-completed [post]
func (h *OnboardingHandler) StepCompleted(c *fiber.Ctx) error {
	var in dto.StepCompletedRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Step) == "" {
		return badRequest(c, "VALIDATION", "email y step son requeridos")
	}
	key, _ := onboarding.ParseCandidateKey(strings.TrimSpace(in.Email))
	if !canAccess(c, key) {
		return forbidden(c)
	}
	if err := h.uc.ReportStepCompleted(c.UserContext(), in.Email, in.Step); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return badRequest(c, "CANDIDATE_NOT_FOUND", err.Error())
		}
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Step completion email sent successfully."})
}

// opaqueData guarda el payload tal cual: un string JSON se desempaqueta, cualquier otro valor
// se conserva como texto JSON. Ausente o null → nil.
func opaqueData(raw json.RawMessage) *string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	return &trimmed
}

// canAccess el personal de RRHH accede a todo; un candidato solo a sus propios datos.
func canAccess(c *fiber.Ctx, key entity.CandidateKey) bool {
	if IsStaff(c) {
		return true
	}
	if key.ID != 0 {
		return key.ID == GetCandidateID(c)
	}
	return key.Email != "" && strings.EqualFold(key.Email, GetEmail(c))
}
