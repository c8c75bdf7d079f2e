package onboarding_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func rec(id int64, step, status string, at time.Time) *entity.StepRecord {
	return &entity.StepRecord{ID: id, CandidateEmail: "a@b.com", StepID: step, Status: status, UpdatedAt: at}
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeProgress
// ──────────────────────────────────────────────────────────────────────────────

// 3 de 9 pasos completados → round(300/9) = 33.
func TestComputeProgress_TresDeNueve(t *testing.T) {
	latest := map[string]*entity.StepRecord{
		"login":        rec(1, "login", "completed", t0),
		"forms":        rec(2, "forms", "COMPLETED", t0),
		"documents":    rec(3, "documents", "Completed", t0),
		"verification": rec(4, "verification", "pending", t0),
		"hr-review":    rec(5, "hr-review", "in-review", t0),
	}
	assert.Equal(t, 33, onboarding.ComputeProgress(onboarding.StepIDs(), latest))
}

func TestComputeProgress_ListaVaciaRetornaCero(t *testing.T) {
	assert.Equal(t, 0, onboarding.ComputeProgress(nil, nil))
	assert.Equal(t, 0, onboarding.ComputeProgress([]string{}, map[string]*entity.StepRecord{
		"login": rec(1, "login", "completed", t0),
	}))
}

// 1 de 8 → 12.5 → 13 (mitad se aleja de cero).
func TestComputeProgress_RedondeoMitadArriba(t *testing.T) {
	required := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	latest := map[string]*entity.StepRecord{"a": rec(1, "a", "completed", t0)}
	assert.Equal(t, 13, onboarding.ComputeProgress(required, latest))
}

func TestComputeProgress_IgnoraPasosNoRequeridos(t *testing.T) {
	latest := map[string]*entity.StepRecord{
		"login": rec(1, "login", "completed", t0),
		"extra": rec(2, "extra", "completed", t0),
	}
	assert.Equal(t, 11, onboarding.ComputeProgress(onboarding.StepIDs(), latest))
}

func TestComputeProgress_TodosCompletados(t *testing.T) {
	latest := map[string]*entity.StepRecord{}
	for i, id := range onboarding.StepIDs() {
		latest[id] = rec(int64(i+1), id, "completed", t0)
	}
	assert.Equal(t, 100, onboarding.ComputeProgress(onboarding.StepIDs(), latest))
}

// ──────────────────────────────────────────────────────────────────────────────
// LatestByStep
// ──────────────────────────────────────────────────────────────────────────────

func TestLatestByStep_GanaElMasReciente(t *testing.T) {
	older := rec(1, "forms", "pending", t0)
	newerRec := rec(2, "forms", "completed", t0.Add(time.Minute))
	latest := onboarding.LatestByStep([]*entity.StepRecord{newerRec, older})
	require.Contains(t, latest, "forms")
	assert.Equal(t, "completed", latest["forms"].Status)
}

func TestLatestByStep_EmpateGanaIDMayor(t *testing.T) {
	a := rec(7, "bgv", "pending", t0)
	b := rec(9, "bgv", "completed", t0)
	latest := onboarding.LatestByStep([]*entity.StepRecord{b, a})
	assert.Equal(t, int64(9), latest["bgv"].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProjectFullTimeline
// ──────────────────────────────────────────────────────────────────────────────

func TestProjectFullTimeline_CandidatoNuevo(t *testing.T) {
	id := int64(42)
	rows := onboarding.ProjectFullTimeline(onboarding.Steps(), nil, &id, "", t0)

	require.Len(t, rows, 9)
	for i, def := range onboarding.Steps() {
		assert.Equal(t, def.ID, rows[i].StepID, "orden del flujo")
		assert.Equal(t, "pending", rows[i].Status)
		assert.Nil(t, rows[i].Data)
		assert.True(t, rows[i].IsPlaceholder())
		assert.Equal(t, entity.UnknownCandidateEmail, rows[i].CandidateEmail)
		assert.Equal(t, t0, rows[i].UpdatedAt)
	}
}

func TestProjectFullTimeline_MezclaRealesYPlaceholders(t *testing.T) {
	data := `{"score":90}`
	forms := rec(5, "forms", "completed", t0)
	forms.Data = &data
	latest := map[string]*entity.StepRecord{"forms": forms}

	rows := onboarding.ProjectFullTimeline(onboarding.Steps(), latest, nil, "", t0.Add(time.Hour))

	require.Len(t, rows, 9)
	assert.Same(t, forms, rows[1])
	assert.Equal(t, "pending", rows[0].Status)
	assert.Equal(t, "a@b.com", rows[0].CandidateEmail, "email tomado de un registro existente")
}

func TestSortByRecency_LimitaYOrdena(t *testing.T) {
	var recs []*entity.StepRecord
	for i := 0; i < 15; i++ {
		recs = append(recs, rec(int64(i+1), "forms", "pending", t0.Add(time.Duration(i)*time.Minute)))
	}
	out := onboarding.SortByRecency(recs, 10)
	require.Len(t, out, 10)
	assert.Equal(t, int64(15), out[0].ID)
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].UpdatedAt.After(out[i-1].UpdatedAt))
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := onboarding.ParsePolicy("append")
	require.NoError(t, err)
	assert.Equal(t, onboarding.PolicyAppend, p)

	p, err = onboarding.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, onboarding.PolicyUpsert, p)

	_, err = onboarding.ParsePolicy("merge")
	assert.Error(t, err)
}

func TestStepTitle(t *testing.T) {
	assert.Equal(t, "Background Verification", onboarding.StepTitle("bgv"))
	assert.Equal(t, "custom", onboarding.StepTitle("custom"))
	assert.True(t, onboarding.IsKnownStep("hr-review"))
	assert.False(t, onboarding.IsKnownStep("payroll"))
}
