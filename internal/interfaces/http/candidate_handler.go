package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Onboarding-api/internal/application/analytics"
	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/application/report"
	"github.com/jhoicas/Onboarding-api/internal/application/usecase"
)

// CandidateHandler directorio de candidatos para RRHH: alta, listado, resumen e informes.
type CandidateHandler struct {
	workflow  *onboarding.WorkflowUseCase
	summary   *analytics.SummaryUseCase
	reports   *report.ReportUseCase
	documents *usecase.DocumentUseCase
}

// NewCandidateHandler construye el handler.
func NewCandidateHandler(
	workflow *onboarding.WorkflowUseCase,
	summary *analytics.SummaryUseCase,
	reports *report.ReportUseCase,
	documents *usecase.DocumentUseCase,
) *CandidateHandler {
	return &CandidateHandler{workflow: workflow, summary: summary, reports: reports, documents: documents}
}

// Enroll godoc
// @Summary      Dar de alta un candidato e iniciar su onboarding
// @Tags         candidates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnrollCandidateRequest  true  "Datos del candidato"
// @Success      201   {object}  dto.EnrollCandidateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/candidates/add [post]
func (h *CandidateHandler) Enroll(c *fiber.Ctx) error {
	var in dto.EnrollCandidateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	p := onboarding.Profile{
		Email:      in.Email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Position:   in.Position,
		Department: in.Department,
	}
	if s := strings.TrimSpace(in.StartDate); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return badRequest(c, "VALIDATION", "startDate debe tener formato YYYY-MM-DD")
		}
		p.StartDate = &d
	}
	out, err := h.workflow.EnrollCandidate(c.UserContext(), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EnrollCandidateResponse{
		Success:   true,
		Message:   "Candidate added and onboarding email sent",
		Candidate: dto.ToCandidateResponse(out.Candidate),
	})
}

// List godoc
// @Summary      Listar candidatos
// @Tags         candidates
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20) maximum(100)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CandidateListResponse
// @Router       /api/candidates [get]
func (h *CandidateHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultPageLimit), Offset: c.QueryInt("offset", 0)}
	page.Normalize()
	list, err := h.workflow.ListCandidates(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.CandidateResponse, 0, len(list))
	for _, cand := range list {
		items = append(items, dto.ToCandidateResponse(cand))
	}
	return c.JSON(dto.CandidateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetByID godoc
// @Summary      Obtener candidato por ID
// @Tags         candidates
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del candidato"
// @Success      200  {object}  dto.CandidateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/candidates/{id} [get]
func (h *CandidateHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser numérico")
	}
	cand, err := h.workflow.Candidate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCandidateResponse(cand))
}

// Summary godoc
// @Summary      Resumen de RRHH (conteo por estado, progreso medio, actividad)
// @Tags         candidates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HRSummaryResponse
// @Router       /api/candidates/summary [get]
func (h *CandidateHandler) Summary(c *fiber.Ctx) error {
	out, err := h.summary.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Documents godoc
// @Summary      Documentos subidos por el candidato
// @Tags         candidates
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del candidato"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/candidates/{id}/documents [get]
func (h *CandidateHandler) Documents(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser numérico")
	}
	out, err := h.documents.ListByCandidate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Informe de progreso en PDF
// @Tags         candidates
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del candidato"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/candidates/{id}/report.pdf [get]
func (h *CandidateHandler) ReportPDF(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser numérico")
	}
	b, name, err := h.reports.DownloadPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", name, b)
}

// TimelineXML godoc
// @Summary      Exportar la línea de tiempo en XML
// @Tags         candidates
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  int  true  "ID del candidato"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/candidates/{id}/timeline.xml [get]
func (h *CandidateHandler) TimelineXML(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser numérico")
	}
	b, name, err := h.reports.DownloadXML(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/xml", name, b)
}

func sendAttachment(c *fiber.Ctx, contentType, name string, b []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(b)
}
