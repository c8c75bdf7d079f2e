package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Onboarding-api/internal/application/usecase"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// DocumentHandler subida de documentos del candidato.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir documento (multipart)
// @Tags         documents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file  true  "Archivo"
// @Param        candidateId  formData  int   true  "ID del candidato"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	candidateID, err := strconv.ParseInt(c.FormValue("candidateId"), 10, 64)
	if err != nil || candidateID <= 0 {
		return badRequest(c, "VALIDATION", "candidateId numérico requerido")
	}
	if !canAccess(c, entity.ByID(candidateID)) {
		return forbidden(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "VALIDATION", "file requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	defer f.Close()

	out, err := h.uc.Upload(c.UserContext(), usecase.UploadInput{
		CandidateID: candidateID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
