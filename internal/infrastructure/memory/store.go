// Package memory implementa los puertos de persistencia en memoria (desarrollo y tests).
// Seguro para acceso concurrente; las unidades de trabajo se serializan por candidato y
// se deshacen con un registro de operaciones inversas.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	candidates    map[int64]*entity.Candidate
	steps         map[int64]*entity.StepRecord
	users         map[string]*entity.User // key: email en minúsculas
	notifications map[int64]*entity.Notification
	documents     map[int64]*entity.Document
	objects       map[string][]byte

	nextCandidateID    int64
	nextStepID         int64
	nextNotificationID int64
	nextDocumentID     int64

	locks *keyedMutex
}

// New devuelve un Store vacío.
func New() *Store {
	return &Store{
		candidates:    make(map[int64]*entity.Candidate),
		steps:         make(map[int64]*entity.StepRecord),
		users:         make(map[string]*entity.User),
		notifications: make(map[int64]*entity.Notification),
		documents:     make(map[int64]*entity.Document),
		objects:       make(map[string][]byte),
		locks:         newKeyedMutex(),
	}
}

// Candidates repositorio de candidatos sin unidad de trabajo.
func (s *Store) Candidates() *CandidateRepository { return &CandidateRepository{s: s} }

// Steps repositorio de pasos sin unidad de trabajo.
func (s *Store) Steps() *StepRecordRepository { return &StepRecordRepository{s: s} }

// Users repositorio de usuarios sin unidad de trabajo.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Notifications repositorio del centro de notificaciones.
func (s *Store) Notifications() *NotificationRepository { return &NotificationRepository{s: s} }

// Documents repositorio de metadatos de documentos.
func (s *Store) Documents() *DocumentRepository { return &DocumentRepository{s: s} }

// undoLog operaciones inversas registradas durante una unidad de trabajo.
// Se ejecutan en orden inverso con s.mu tomado.
type undoLog struct {
	ops []func()
}

func (u *undoLog) add(op func()) {
	if u != nil {
		u.ops = append(u.ops, op)
	}
}

func (s *Store) rollback(u *undoLog) {
	if u == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(u.ops) - 1; i >= 0; i-- {
		u.ops[i]()
	}
	u.ops = nil
}

// stepsMatching registros de la clave (ID autoritativo; si no, email sin distinguir mayúsculas).
// Requiere s.mu tomado.
func (s *Store) stepsMatching(key entity.CandidateKey) []*entity.StepRecord {
	var out []*entity.StepRecord
	for _, r := range s.steps {
		if matches(r, key) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matches(r *entity.StepRecord, key entity.CandidateKey) bool {
	if key.ID != 0 {
		return r.CandidateID != nil && *r.CandidateID == key.ID
	}
	return strings.EqualFold(r.CandidateEmail, key.Email)
}

func cloneCandidate(c *entity.Candidate) *entity.Candidate {
	if c == nil {
		return nil
	}
	cp := *c
	if c.StartDate != nil {
		d := *c.StartDate
		cp.StartDate = &d
	}
	return &cp
}

func cloneSteps(in []*entity.StepRecord) []*entity.StepRecord {
	out := make([]*entity.StepRecord, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
