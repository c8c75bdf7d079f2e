package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func newTestNotifier(s Sender) *SMTPNotifier {
	return NewSMTPNotifierWithSender(s, Options{
		From:     "hr@acme.com",
		FromName: "Acme HR",
		CC:       []string{"lead@acme.com"},
		LoginURL: "https://portal.acme.com/",
		Company:  "Acme",
	}, nil)
}

func rendered(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// Bienvenida
// ─────────────────────────────────────────────────────────────────────────────

func TestNotifyOnboardingStarted_Encabezados(t *testing.T) {
	s := &fakeSender{}
	n := newTestNotifier(s)

	require.NoError(t, n.NotifyOnboardingStarted(context.Background(), "ana@acme.com", "Ana"))
	require.Len(t, s.sent, 1)

	m := s.sent[0]
	assert.Equal(t, []string{"ana@acme.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"lead@acme.com"}, m.GetHeader("Cc"))
	assert.Contains(t, m.GetHeader("From")[0], "hr@acme.com")
	assert.Contains(t, m.GetHeader("Subject")[0], "Acme")

	raw := rendered(t, m)
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
}

func TestWelcomeText_Variantes(t *testing.T) {
	simple := welcomeText(welcomeData{Name: "Ana", LoginURL: "https://portal.acme.com/"})
	assert.Contains(t, simple, "https://portal.acme.com/")
	assert.NotContains(t, simple, " para ")

	detailed := welcomeText(welcomeData{Name: "Ana", Position: "Backend", Department: "Ingenieria", LoginURL: "https://portal.acme.com/"})
	assert.Contains(t, detailed, "Backend")
	assert.Contains(t, detailed, "Ingenieria")
}

func TestNotifyOnboardingStartedDetailed_IncluyeCargo(t *testing.T) {
	s := &fakeSender{}
	n := newTestNotifier(s)

	require.NoError(t, n.NotifyOnboardingStartedDetailed(context.Background(), "ana@acme.com", "Ana", "Backend", "Ingenieria"))
	require.Len(t, s.sent, 1)

	html, err := render(welcomeTmpl, welcomeData{Name: "Ana", Position: "Backend", Department: "Ingenieria"})
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Backend</strong>")
	assert.Contains(t, html, "<strong>Ingenieria</strong>")
}

func TestWelcomeTemplate_EscapaHTML(t *testing.T) {
	html, err := render(welcomeTmpl, welcomeData{Name: "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

// ─────────────────────────────────────────────────────────────────────────────
// Paso completado y errores
// ─────────────────────────────────────────────────────────────────────────────

func TestNotifyStepCompleted_Asunto(t *testing.T) {
	s := &fakeSender{}
	n := newTestNotifier(s)

	require.NoError(t, n.NotifyStepCompleted(context.Background(), "ana@acme.com", "Document Upload"))
	require.Len(t, s.sent, 1)
	assert.Equal(t, []string{"Paso completado: Document Upload"}, s.sent[0].GetHeader("Subject"))
}

func TestNotify_FalloSMTP(t *testing.T) {
	s := &fakeSender{err: errors.New("connection refused")}
	n := newTestNotifier(s)

	err := n.NotifyStepCompleted(context.Background(), "ana@acme.com", "Forms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNotify_ContextoCancelado(t *testing.T) {
	s := &fakeSender{}
	n := newTestNotifier(s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.NotifyOnboardingStarted(ctx, "ana@acme.com", "Ana")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.sent)
}

func TestLogNotifier_NoFalla(t *testing.T) {
	n := NewLogNotifier(nil)
	ctx := context.Background()
	assert.NoError(t, n.NotifyOnboardingStarted(ctx, "a@x.com", "A"))
	assert.NoError(t, n.NotifyOnboardingStartedDetailed(ctx, "a@x.com", "A", "P", "D"))
	assert.NoError(t, n.NotifyStepCompleted(ctx, "a@x.com", "Forms"))
}
