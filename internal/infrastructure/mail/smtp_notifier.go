package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// Sender envía mensajes ya construidos. *gomail.Dialer lo implementa.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Options datos de remitente y contenido comunes a todos los correos.
type Options struct {
	From     string
	FromName string
	CC       []string
	LoginURL string
	Company  string
}

// SMTPNotifier envía las notificaciones de onboarding por correo (multipart texto + HTML).
type SMTPNotifier struct {
	sender Sender
	opts   Options
	log    *logger.Logger
}

var _ onboarding.Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier crea el notificador usando un gomail.Dialer configurado desde cfg.
func NewSMTPNotifier(cfg config.SMTPConfig, company string, log *logger.Logger) *SMTPNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return NewSMTPNotifierWithSender(d, Options{
		From:     cfg.From,
		FromName: cfg.FromName,
		CC:       cfg.CC,
		LoginURL: cfg.LoginURL,
		Company:  company,
	}, log)
}

// NewSMTPNotifierWithSender permite inyectar el Sender (tests).
func NewSMTPNotifierWithSender(sender Sender, opts Options, log *logger.Logger) *SMTPNotifier {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Company == "" {
		opts.Company = opts.FromName
	}
	return &SMTPNotifier{sender: sender, opts: opts, log: log.Component("mail")}
}

// welcomeSubject asunto común a ambas variantes de bienvenida.
func (n *SMTPNotifier) welcomeSubject() string {
	return fmt.Sprintf("¡Felicitaciones! Bienvenido(a) a %s - Proceso de onboarding iniciado", n.opts.Company)
}

func (n *SMTPNotifier) NotifyOnboardingStarted(ctx context.Context, email, name string) error {
	return n.sendWelcome(ctx, email, welcomeData{Name: name})
}

func (n *SMTPNotifier) NotifyOnboardingStartedDetailed(ctx context.Context, email, name, position, department string) error {
	return n.sendWelcome(ctx, email, welcomeData{Name: name, Position: position, Department: department})
}

func (n *SMTPNotifier) NotifyStepCompleted(ctx context.Context, email, stepTitle string) error {
	d := stepData{Step: stepTitle, Company: n.opts.Company, LoginURL: n.opts.LoginURL, Signature: n.opts.FromName}
	html, err := render(stepTmpl, d)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Paso completado: %s", stepTitle)
	return n.send(ctx, email, subject, stepText(d), html)
}

func (n *SMTPNotifier) sendWelcome(ctx context.Context, email string, d welcomeData) error {
	d.Company = n.opts.Company
	d.LoginURL = n.opts.LoginURL
	d.Signature = n.opts.FromName
	html, err := render(welcomeTmpl, d)
	if err != nil {
		return err
	}
	return n.send(ctx, email, n.welcomeSubject(), welcomeText(d), html)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, text, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.opts.From, n.opts.FromName)
	m.SetHeader("To", to)
	if len(n.opts.CC) > 0 {
		m.SetHeader("Cc", n.opts.CC...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := n.sender.DialAndSend(m); err != nil {
		n.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("fallo envío de correo")
		return fmt.Errorf("smtp: %w", err)
	}
	n.log.Info().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}
