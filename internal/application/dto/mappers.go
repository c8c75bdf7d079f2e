package dto

import (
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
)

// ToStepRecordResponse convierte un registro (o placeholder) a su forma de salida.
func ToStepRecordResponse(r *entity.StepRecord) StepRecordResponse {
	return StepRecordResponse{
		ID:             r.ID,
		CandidateID:    r.CandidateID,
		CandidateEmail: r.CandidateEmail,
		StepID:         r.StepID,
		Title:          onboarding.StepTitle(r.StepID),
		Status:         r.Status,
		Data:           r.Data,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToStepRecordResponses nunca devuelve nil (JSON "[]").
func ToStepRecordResponses(recs []*entity.StepRecord) []StepRecordResponse {
	out := make([]StepRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, ToStepRecordResponse(r))
	}
	return out
}

// ToCandidateResponse convierte un candidato del directorio.
func ToCandidateResponse(c *entity.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:           c.ID,
		Email:        c.Email,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Position:     c.Position,
		Department:   c.Department,
		StartDate:    c.StartDate,
		Status:       c.Status,
		Progress:     c.Progress,
		LastActivity: c.LastActivity,
	}
}

// ToNotificationResponse convierte una notificación.
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserEmail: n.UserEmail,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// ToDocumentResponse convierte los metadatos de un documento.
func ToDocumentResponse(d *entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		CandidateID: d.CandidateID,
		FileName:    d.FileName,
		FileType:    d.FileType,
		FileSize:    d.FileSize,
		URL:         d.URL,
		UploadedAt:  d.UploadedAt,
	}
}
