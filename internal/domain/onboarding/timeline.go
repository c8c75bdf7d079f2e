package onboarding

import (
	"sort"
	"time"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// ProjectFullTimeline produce una fila por paso definido, en orden del flujo: el último registro
// real si existe o un placeholder "pending" (sin data, UpdatedAt = now). El email del placeholder
// se toma de cualquier registro existente del candidato; si no hay ninguno se usa fallbackEmail y,
// si también está vacío, el centinela UnknownCandidateEmail.
func ProjectFullTimeline(
	defs []StepDefinition,
	latest map[string]*entity.StepRecord,
	candidateID *int64,
	fallbackEmail string,
	now time.Time,
) []*entity.StepRecord {
	email := emailFromRecords(latest)
	if email == "" {
		email = fallbackEmail
	}
	if email == "" {
		email = entity.UnknownCandidateEmail
	}

	out := make([]*entity.StepRecord, 0, len(defs))
	for _, def := range defs {
		if rec, ok := latest[def.ID]; ok && rec != nil {
			out = append(out, rec)
			continue
		}
		out = append(out, &entity.StepRecord{
			CandidateID:    candidateID,
			CandidateEmail: email,
			StepID:         def.ID,
			Status:         entity.StepStatusPending,
			UpdatedAt:      now,
		})
	}
	return out
}

// emailFromRecords primer email no vacío en orden determinista (por ID).
func emailFromRecords(latest map[string]*entity.StepRecord) string {
	recs := make([]*entity.StepRecord, 0, len(latest))
	for _, r := range latest {
		if r != nil {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	for _, r := range recs {
		if r.CandidateEmail != "" && r.CandidateEmail != entity.UnknownCandidateEmail {
			return r.CandidateEmail
		}
	}
	return ""
}

// SortByRecency ordena por UpdatedAt descendente (ID descendente en empate) y recorta a limit.
// limit <= 0 no recorta.
func SortByRecency(records []*entity.StepRecord, limit int) []*entity.StepRecord {
	out := make([]*entity.StepRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
