package repository

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// DocumentRepository metadatos de documentos subidos.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	ListByCandidate(ctx context.Context, candidateID int64) ([]*entity.Document, error)
}
