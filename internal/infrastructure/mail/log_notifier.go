package mail

import (
	"context"

	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// LogNotifier registra las notificaciones en el log sin enviarlas (SMTP no configurado).
type LogNotifier struct {
	log *logger.Logger
}

var _ onboarding.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Component("mail")}
}

func (n *LogNotifier) NotifyOnboardingStarted(_ context.Context, email, name string) error {
	n.log.Info().Str("to", email).Str("name", name).Msg("onboarding iniciado (correo no enviado)")
	return nil
}

func (n *LogNotifier) NotifyOnboardingStartedDetailed(_ context.Context, email, name, position, department string) error {
	n.log.Info().Str("to", email).Str("name", name).Str("position", position).Str("department", department).
		Msg("onboarding iniciado (correo no enviado)")
	return nil
}

func (n *LogNotifier) NotifyStepCompleted(_ context.Context, email, stepTitle string) error {
	n.log.Info().Str("to", email).Str("step", stepTitle).Msg("paso completado (correo no enviado)")
	return nil
}
