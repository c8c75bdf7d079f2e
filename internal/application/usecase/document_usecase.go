package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

// MaxDocumentSize tamaño máximo aceptado por documento.
const MaxDocumentSize = 10 << 20

// UploadInput archivo recibido para un candidato.
type UploadInput struct {
	CandidateID int64
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DocumentUseCase sube documentos al object storage y registra sus metadatos.
type DocumentUseCase struct {
	docs       repository.DocumentRepository
	candidates repository.CandidateRepository
	storage    ObjectStorage
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(docs repository.DocumentRepository, candidates repository.CandidateRepository, storage ObjectStorage) *DocumentUseCase {
	return &DocumentUseCase{docs: docs, candidates: candidates, storage: storage}
}

// Upload guarda el binario en documents/<candidateId>/<uuid>_<nombre> y persiste el registro.
func (uc *DocumentUseCase) Upload(ctx context.Context, in UploadInput) (*dto.DocumentResponse, error) {
	name := sanitizeFileName(in.FileName)
	if in.CandidateID <= 0 || name == "" {
		return nil, fmt.Errorf("%w: candidateId y archivo son requeridos", domain.ErrValidation)
	}
	if in.Size > MaxDocumentSize {
		return nil, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrValidation, MaxDocumentSize)
	}
	cand, err := uc.candidates.GetByID(ctx, in.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if cand == nil {
		return nil, fmt.Errorf("%w: candidato %d", domain.ErrNotFound, in.CandidateID)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("documents/%d/%s_%s", in.CandidateID, uuid.New().String(), name)
	url, err := uc.storage.Put(ctx, key, contentType, in.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: subir documento: %w", domain.ErrStorage, err)
	}

	doc := &entity.Document{
		CandidateID: in.CandidateID,
		FileName:    name,
		FileType:    contentType,
		FileSize:    in.Size,
		ObjectKey:   key,
		URL:         url,
		UploadedAt:  time.Now(),
	}
	if err := uc.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	out := dto.ToDocumentResponse(doc)
	return &out, nil
}

// ListByCandidate documentos del candidato.
func (uc *DocumentUseCase) ListByCandidate(ctx context.Context, candidateID int64) ([]dto.DocumentResponse, error) {
	docs, err := uc.docs.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.ToDocumentResponse(d))
	}
	return out, nil
}

// sanitizeFileName conserva solo el nombre base sin separadores de ruta ni espacios.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" {
		return ""
	}
	return strings.ReplaceAll(name, " ", "_")
}
