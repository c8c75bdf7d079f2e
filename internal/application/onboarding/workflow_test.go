package onboarding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Onboarding-api/internal/domain"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	dom "github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/memory"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type sentMail struct {
	kind, email, name, position, department, step string
}

// fakeNotifier registra los correos y opcionalmente falla.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeNotifier) record(m sentMail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeNotifier) NotifyOnboardingStarted(_ context.Context, email, name string) error {
	return f.record(sentMail{kind: "simple", email: email, name: name})
}

func (f *fakeNotifier) NotifyOnboardingStartedDetailed(_ context.Context, email, name, position, department string) error {
	return f.record(sentMail{kind: "detailed", email: email, name: name, position: position, department: department})
}

func (f *fakeNotifier) NotifyStepCompleted(_ context.Context, email, stepTitle string) error {
	return f.record(sentMail{kind: "step", email: email, step: stepTitle})
}

type fixture struct {
	store    *memory.Store
	notifier *fakeNotifier
	uc       *WorkflowUseCase
	clock    time.Time
}

func newFixture(t *testing.T, policy dom.StorePolicy) *fixture {
	t.Helper()
	s := memory.New()
	f := &fixture{store: s, notifier: &fakeNotifier{}, clock: baseTime}
	f.uc = NewWorkflowUseCase(memory.NewTxRunner(s), s.Candidates(), s.Steps(), f.notifier, policy, logger.Nop())
	f.uc.now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func (f *fixture) seedCandidate(t *testing.T, email string) *entity.Candidate {
	t.Helper()
	c := &entity.Candidate{Email: email, FirstName: "Ana", LastName: "Ruiz", Status: entity.CandidateStatusPending}
	require.NoError(t, f.store.Candidates().Create(context.Background(), c))
	return c
}

func (f *fixture) candidate(t *testing.T, id int64) *entity.Candidate {
	t.Helper()
	c, err := f.store.Candidates().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func ptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// ReportStepUpdate
// ──────────────────────────────────────────────────────────────────────────────

func TestReportStepUpdate_RecalculaProgreso(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	for _, step := range []string{"login", "forms", "documents"} {
		_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), step, "completed", nil)
		require.NoError(t, err)
	}

	got := f.candidate(t, c.ID)
	assert.Equal(t, 33, got.Progress)
	assert.Equal(t, f.clock, got.LastActivity)
}

func TestReportStepUpdate_RegistroLlevaIDYEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	rec, err := f.uc.ReportStepUpdate(ctx, entity.ByEmail("ana@acme.com"), "forms", "completed", ptr(`{"a":1}`))
	require.NoError(t, err)
	require.NotNil(t, rec.CandidateID)
	assert.Equal(t, c.ID, *rec.CandidateID)
	assert.Equal(t, "ana@acme.com", rec.CandidateEmail)
	assert.Equal(t, 11, f.candidate(t, c.ID).Progress)
}

func TestReportStepUpdate_CompletedSinDistinguirMayusculas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "forms", "COMPLETED", nil)
	require.NoError(t, err)
	assert.Equal(t, 11, f.candidate(t, c.ID).Progress)
}

func TestReportStepUpdate_CandidatoNoResuelto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)

	rec, err := f.uc.ReportStepUpdate(ctx, entity.ByEmail("ghost@acme.com"), "forms", "completed", nil)
	require.NoError(t, err)
	assert.Nil(t, rec.CandidateID)
	assert.Equal(t, "ghost@acme.com", rec.CandidateEmail)

	rec, err = f.uc.ReportStepUpdate(ctx, entity.ByID(404), "forms", "completed", nil)
	require.NoError(t, err)
	require.NotNil(t, rec.CandidateID)
	assert.Equal(t, int64(404), *rec.CandidateID)
	assert.Equal(t, entity.UnknownCandidateEmail, rec.CandidateEmail)
}

func TestReportStepUpdate_Validacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "", "completed", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "forms", " ", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.ReportStepUpdate(ctx, entity.CandidateKey{}, "forms", "completed", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	recs, err := f.store.Steps().ListByCandidate(ctx, entity.ByID(c.ID))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReportStepUpdate_Idempotente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	for i := 0; i < 3; i++ {
		_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "offer", "completed", ptr("x"))
		require.NoError(t, err)
	}
	recs, err := f.store.Steps().ListByCandidate(ctx, entity.ByID(c.ID))
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 11, f.candidate(t, c.ID).Progress)
}

func TestReportStepUpdate_PoliticaAppend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyAppend)
	c := f.seedCandidate(t, "ana@acme.com")

	_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "forms", "completed", nil)
	require.NoError(t, err)
	assert.Equal(t, 11, f.candidate(t, c.ID).Progress)

	_, err = f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "forms", "pending", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, f.candidate(t, c.ID).Progress)

	recs, err := f.store.Steps().ListByCandidate(ctx, entity.ByID(c.ID))
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	latest, err := f.uc.LatestSteps(ctx, "ana@acme.com")
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "pending", latest[0].Status)
}

// failingRunner envuelve el runner en memoria y hace fallar la escritura del progreso.
type failingRunner struct {
	inner TxRunner
}

type failingCandidates struct {
	repository.CandidateRepository
}

func (failingCandidates) UpdateProgress(context.Context, int64, int, time.Time) error {
	return errors.New("conexión perdida")
}

func (r failingRunner) RunForCandidate(ctx context.Context, lockKey string, fn func(repository.CandidateRepository, repository.StepRecordRepository, repository.UserRepository) error) error {
	return r.inner.RunForCandidate(ctx, lockKey, func(c repository.CandidateRepository, s repository.StepRecordRepository, u repository.UserRepository) error {
		return fn(failingCandidates{c}, s, u)
	})
}

func TestReportStepUpdate_FalloDeProgresoDeshaceElPaso(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")
	f.uc.tx = failingRunner{inner: memory.NewTxRunner(f.store)}

	_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "forms", "completed", nil)
	require.ErrorIs(t, err, domain.ErrStorage)

	recs, err := f.store.Steps().ListByCandidate(ctx, entity.ByID(c.ID))
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 0, f.candidate(t, c.ID).Progress)
}

func TestReportStepUpdate_ConcurrentesConvergen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyAppend)
	var mu sync.Mutex
	f.uc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	c := f.seedCandidate(t, "ana@acme.com")

	var wg sync.WaitGroup
	for _, step := range dom.StepIDs() {
		wg.Add(1)
		go func(step string) {
			defer wg.Done()
			_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), step, "completed", nil)
			assert.NoError(t, err)
		}(step)
	}
	wg.Wait()

	assert.Equal(t, 100, f.candidate(t, c.ID).Progress)
}

// ──────────────────────────────────────────────────────────────────────────────
// ForceCompleteStep
// ──────────────────────────────────────────────────────────────────────────────

func TestForceCompleteStep_SinRegistro(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	_, err := f.uc.ForceCompleteStep(ctx, entity.ByEmail("ana@acme.com"), "bgv")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	recs, err := f.store.Steps().ListByCandidate(ctx, entity.ByEmail("ana@acme.com"))
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 0, f.candidate(t, c.ID).Progress)
}

func TestForceCompleteStep_CandidatoDesconocidoNoCreaRegistro(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)

	_, err := f.uc.ForceCompleteStep(ctx, entity.ByEmail("nobody@x.com"), "bgv")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	recs, err := f.store.Steps().ListByCandidate(ctx, entity.ByEmail("nobody@x.com"))
	require.NoError(t, err)
	assert.Empty(t, recs)
	all, err := f.store.Steps().ListRecent(ctx, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.notifier.sent)
}

func TestForceCompleteStep_CompletaConservandoData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")
	_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "bgv", "pending", ptr("payload"))
	require.NoError(t, err)

	rec, err := f.uc.ForceCompleteStep(ctx, entity.ByEmail("ana@acme.com"), "bgv")
	require.NoError(t, err)
	assert.Equal(t, entity.StepStatusCompleted, rec.Status)
	require.NotNil(t, rec.Data)
	assert.Equal(t, "payload", *rec.Data)
	assert.Equal(t, f.clock, rec.UpdatedAt)
	assert.Equal(t, 11, f.candidate(t, c.ID).Progress)
	assert.Empty(t, f.notifier.sent)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReportStepCompleted
// ──────────────────────────────────────────────────────────────────────────────

func TestReportStepCompleted_IDDesconocido(t *testing.T) {
	f := newFixture(t, dom.PolicyUpsert)

	err := f.uc.ReportStepCompleted(context.Background(), "999", "forms")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.notifier.sent)
}

func TestReportStepCompleted_TransicionesDeEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	require.NoError(t, f.uc.ReportStepCompleted(ctx, "ana@acme.com", "forms"))
	assert.Equal(t, entity.CandidateStatusActive, f.candidate(t, c.ID).Status)

	require.NoError(t, f.uc.ReportStepCompleted(ctx, "1", "gamification"))
	got := f.candidate(t, c.ID)
	assert.Equal(t, entity.CandidateStatusCompleted, got.Status)
	assert.Equal(t, 0, got.Progress)

	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, sentMail{kind: "step", email: "ana@acme.com", step: "Adaptive Forms"}, f.notifier.sent[0])
	assert.Equal(t, "Gamified Induction", f.notifier.sent[1].step)
}

func TestReportStepCompleted_OtroPasoSoloNotifica(t *testing.T) {
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	require.NoError(t, f.uc.ReportStepCompleted(context.Background(), "ana@acme.com", "custom-step"))
	assert.Equal(t, entity.CandidateStatusPending, f.candidate(t, c.ID).Status)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "custom-step", f.notifier.sent[0].step)
}

func TestReportStepCompleted_FalloDeCorreo(t *testing.T) {
	f := newFixture(t, dom.PolicyUpsert)
	f.seedCandidate(t, "ana@acme.com")
	f.notifier.err = errors.New("smtp caído")

	err := f.uc.ReportStepCompleted(context.Background(), "ana@acme.com", "documents")
	assert.ErrorIs(t, err, domain.ErrNotificationDelivery)
}

// ──────────────────────────────────────────────────────────────────────────────
// EnrollCandidate
// ──────────────────────────────────────────────────────────────────────────────

func TestEnrollCandidate_CreaCandidatoUsuarioYLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)

	out, err := f.uc.EnrollCandidate(ctx, Profile{
		Email: " Ana@Acme.com ", FirstName: "ana maría", LastName: "ruiz",
		Position: "Backend", Department: "Ingeniería",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@acme.com", out.Candidate.Email)
	assert.Equal(t, "ana maría", out.Candidate.FirstName)
	assert.Equal(t, "ruiz", out.Candidate.LastName)
	assert.Equal(t, entity.CandidateStatusPending, out.Candidate.Status)
	assert.Equal(t, 0, out.Candidate.Progress)
	assert.Equal(t, entity.RoleCandidate, out.User.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("ana maríaruiz")))

	recs, err := f.store.Steps().ListByCandidate(ctx, entity.ByID(out.Candidate.ID))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, dom.StepLogin, recs[0].StepID)
	assert.Equal(t, entity.StepStatusCompleted, recs[0].Status)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "detailed", f.notifier.sent[0].kind)
	assert.Equal(t, "Ana María Ruiz", f.notifier.sent[0].name)
}

func TestEnrollCandidate_ConservaNombresTalCual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)

	out, err := f.uc.EnrollCandidate(ctx, Profile{Email: "ana@acme.com", FirstName: "  ana maría ", LastName: "de la cruz"})
	require.NoError(t, err)

	stored := f.candidate(t, out.Candidate.ID)
	assert.Equal(t, "ana maría", stored.FirstName)
	assert.Equal(t, "de la cruz", stored.LastName)
	assert.Equal(t, "de la cruz", out.User.LastName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("ana maríade la cruz")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("Ana MaríaDe La Cruz")))

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Ana María De La Cruz", f.notifier.sent[0].name)
}

func TestEnrollCandidate_VarianteSimple(t *testing.T) {
	f := newFixture(t, dom.PolicyUpsert)

	_, err := f.uc.EnrollCandidate(context.Background(), Profile{Email: "leo@acme.com", FirstName: "Leo", Position: "QA"})
	require.NoError(t, err)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "simple", f.notifier.sent[0].kind)
}

func TestEnrollCandidate_Validacion(t *testing.T) {
	f := newFixture(t, dom.PolicyUpsert)

	_, err := f.uc.EnrollCandidate(context.Background(), Profile{FirstName: "Leo"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.EnrollCandidate(context.Background(), Profile{Email: "leo@acme.com", FirstName: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.notifier.sent)
}

func TestEnrollCandidate_Duplicado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	_, err := f.uc.EnrollCandidate(ctx, Profile{Email: "leo@acme.com", FirstName: "Leo"})
	require.NoError(t, err)

	_, err = f.uc.EnrollCandidate(ctx, Profile{Email: "LEO@acme.com", FirstName: "Leo"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, f.notifier.sent, 1)
}

func TestEnrollCandidate_FalloDeCorreoConservaDatos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	f.notifier.err = errors.New("smtp caído")

	out, err := f.uc.EnrollCandidate(ctx, Profile{Email: "leo@acme.com", FirstName: "Leo"})
	require.ErrorIs(t, err, domain.ErrNotificationDelivery)
	require.NotNil(t, out)

	exists, err := f.store.Candidates().ExistsByEmail(ctx, "leo@acme.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestTimeline_CandidatoNuevoSoloPlaceholders(t *testing.T) {
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")

	rows, err := f.uc.Timeline(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, rows, 9)
	for i, r := range rows {
		assert.Equal(t, dom.StepIDs()[i], r.StepID)
		assert.Equal(t, entity.StepStatusPending, r.Status)
		assert.True(t, r.IsPlaceholder())
		assert.Equal(t, "ana@acme.com", r.CandidateEmail)
	}
}

func TestTimeline_MezclaRegistrosYPlaceholders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")
	_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "offer", "completed", nil)
	require.NoError(t, err)

	rows, err := f.uc.Timeline(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "offer", rows[5].StepID)
	assert.False(t, rows[5].IsPlaceholder())
	assert.Equal(t, entity.StepStatusCompleted, rows[5].Status)
}

func TestTimeline_CandidatoInexistenteUsaCentinela(t *testing.T) {
	f := newFixture(t, dom.PolicyUpsert)
	rows, err := f.uc.Timeline(context.Background(), 77)
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, entity.UnknownCandidateEmail, rows[0].CandidateEmail)
}

func TestRecentActivities_Limites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyAppend)
	c := f.seedCandidate(t, "ana@acme.com")
	for i := 0; i < 12; i++ {
		_, err := f.uc.ReportStepUpdate(ctx, entity.ByID(c.ID), "forms", "pending", nil)
		require.NoError(t, err)
	}
	for i := 0; i < 12; i++ {
		_, err := f.uc.ReportStepUpdate(ctx, entity.ByEmail("otro@acme.com"), "forms", "pending", nil)
		require.NoError(t, err)
	}

	mine, err := f.uc.RecentActivities(ctx, "ana@acme.com")
	require.NoError(t, err)
	assert.Len(t, mine, CandidateActivityLimit)

	all, err := f.uc.AllRecentActivities(ctx)
	require.NoError(t, err)
	require.Len(t, all, GlobalActivityLimit)
	assert.Equal(t, "otro@acme.com", all[0].CandidateEmail)
}

func TestRecomputeProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, dom.PolicyUpsert)
	c := f.seedCandidate(t, "ana@acme.com")
	_, err := f.store.Steps().Append(ctx, c.Key(), "forms", "completed", nil, baseTime)
	require.NoError(t, err)

	p, err := f.uc.RecomputeProgress(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, p)
	assert.Equal(t, 11, f.candidate(t, c.ID).Progress)

	_, err = f.uc.RecomputeProgress(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
