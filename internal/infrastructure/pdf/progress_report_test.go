package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/application/report"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
)

func TestGenerate_ProduceUnPDF(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	id := int64(1)
	latest := map[string]*entity.StepRecord{
		"login": {ID: 1, CandidateID: &id, CandidateEmail: "ana@acme.com", StepID: "login", Status: "completed", UpdatedAt: now},
	}
	r := report.CandidateReport{
		Candidate:   &entity.Candidate{ID: 1, Email: "ana@acme.com", FirstName: "Ana", Status: "pending", Progress: 11},
		Timeline:    onboarding.ProjectFullTimeline(onboarding.Steps(), latest, &id, "", now),
		GeneratedAt: now,
	}

	b, err := NewMarotoReportGenerator("Acme").Generate(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerate_SinCandidato(t *testing.T) {
	_, err := NewMarotoReportGenerator("Acme").Generate(report.CandidateReport{})
	assert.Error(t, err)
}
