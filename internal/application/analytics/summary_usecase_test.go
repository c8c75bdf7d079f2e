package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/memory"
)

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	progress := []int{0, 11, 50, 100}
	for i, status := range []string{"pending", "pending", "active", "completed"} {
		c := &entity.Candidate{Email: string(rune('a'+i)) + "@acme.com", Status: status, Progress: progress[i]}
		require.NoError(t, s.Candidates().Create(ctx, c))
	}
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		_, err := s.Steps().Append(ctx, entity.ByEmail("a@acme.com"), "forms", "pending", nil, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	out, err := NewSummaryUseCase(s.Candidates(), s.Steps()).GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 2, out.ByStatus["pending"])
	assert.Equal(t, 1, out.ByStatus["active"])
	assert.Equal(t, 1, out.ByStatus["completed"])
	assert.Equal(t, "40.25", out.AverageProgress.StringFixed(2))
	require.Len(t, out.RecentActivity, 20)
	assert.Equal(t, base.Add(24*time.Minute), out.RecentActivity[0].UpdatedAt)
	assert.Equal(t, "Adaptive Forms", out.RecentActivity[0].Title)
}

func TestGetSummary_SinCandidatos(t *testing.T) {
	s := memory.New()
	out, err := NewSummaryUseCase(s.Candidates(), s.Steps()).GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.Total)
	assert.Equal(t, 0, out.ByStatus["active"])
	assert.True(t, out.AverageProgress.IsZero())
	assert.NotNil(t, out.RecentActivity)
}
