package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository metadatos de documentos en memoria.
type DocumentRepository struct {
	s *Store
}

func (r *DocumentRepository) Create(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextDocumentID++
	d.ID = r.s.nextDocumentID
	cp := *d
	r.s.documents[d.ID] = &cp
	return nil
}

func (r *DocumentRepository) ListByCandidate(_ context.Context, candidateID int64) ([]*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Document{}
	for _, d := range r.s.documents {
		if d.CandidateID == candidateID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ObjectStorage almacenamiento de binarios en memoria (backend "memory").
type ObjectStorage struct {
	s *Store
}

// Objects devuelve el almacenamiento de binarios del Store.
func (s *Store) Objects() *ObjectStorage { return &ObjectStorage{s: s} }

// Put guarda el contenido y devuelve una URL memory://<key>.
func (o *ObjectStorage) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("leyendo objeto %s: %w", key, err)
	}
	o.s.mu.Lock()
	o.s.objects[key] = buf.Bytes()
	o.s.mu.Unlock()
	return "memory://" + key, nil
}

// Get contenido guardado (tests).
func (o *ObjectStorage) Get(key string) ([]byte, bool) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	b, ok := o.s.objects[key]
	return b, ok
}
