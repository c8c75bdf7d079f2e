package onboarding

import (
	"strings"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// IsCompleted compara el estado contra "completed" sin distinguir mayúsculas.
func IsCompleted(status string) bool {
	return strings.EqualFold(status, entity.StepStatusCompleted)
}

// ComputeProgress porcentaje entero de pasos requeridos cuyo último estado es "completed".
// Redondeo al entero más cercano, mitades alejándose de cero. Lista vacía → 0.
func ComputeProgress(required []string, latest map[string]*entity.StepRecord) int {
	if len(required) == 0 {
		return 0
	}
	completed := 0
	for _, id := range required {
		if rec, ok := latest[id]; ok && rec != nil && IsCompleted(rec.Status) {
			completed++
		}
	}
	pct := decimal.NewFromInt(int64(completed)).Mul(hundred).
		Div(decimal.NewFromInt(int64(len(required)))).
		Round(0)
	return int(pct.IntPart())
}

// LatestByStep reduce una lista de registros al más reciente por paso:
// mayor UpdatedAt; en empate gana el ID más alto (insertado después).
func LatestByStep(records []*entity.StepRecord) map[string]*entity.StepRecord {
	latest := make(map[string]*entity.StepRecord, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		cur, ok := latest[rec.StepID]
		if !ok || newer(rec, cur) {
			latest[rec.StepID] = rec
		}
	}
	return latest
}

// newer indica si a reemplaza a b como estado vigente.
func newer(a, b *entity.StepRecord) bool {
	if a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.ID > b.ID
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}
