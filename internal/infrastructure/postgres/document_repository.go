package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo metadatos de documentos sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (candidate_id, file_name, file_type, file_size, object_key, url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, d.CandidateID, d.FileName, d.FileType, d.FileSize, d.ObjectKey, d.URL, d.UploadedAt).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) ListByCandidate(ctx context.Context, candidateID int64) ([]*entity.Document, error) {
	query := `
		SELECT id, candidate_id, file_name, file_type, file_size, object_key, url, uploaded_at
		FROM documents WHERE candidate_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	out := []*entity.Document{}
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.CandidateID, &d.FileName, &d.FileType, &d.FileSize, &d.ObjectKey, &d.URL, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
