// Package bootstrap arma el grafo de dependencias a partir de la configuración.
// Lo comparten el servidor HTTP y la CLI de operación.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/Onboarding-api/internal/application/analytics"
	"github.com/jhoicas/Onboarding-api/internal/application/auth"
	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/application/report"
	"github.com/jhoicas/Onboarding-api/internal/application/usecase"
	dom "github.com/jhoicas/Onboarding-api/internal/domain/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/export"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/mail"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Onboarding-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Onboarding-api/internal/infrastructure/storage"
	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// Container casos de uso listos para inyectar en los adaptadores de entrada.
type Container struct {
	Workflow      *onboarding.WorkflowUseCase
	Auth          *auth.AuthUseCase
	Users         *usecase.UserUseCase
	Summary       *analytics.SummaryUseCase
	Reports       *report.ReportUseCase
	Documents     *usecase.DocumentUseCase
	Notifications *usecase.NotificationUseCase

	// Migrate crea el esquema; no-op en el backend de memoria.
	Migrate func(ctx context.Context) error
}

type repositories struct {
	tx            onboarding.TxRunner
	candidates    repository.CandidateRepository
	steps         repository.StepRecordRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	documents     repository.DocumentRepository
	objects       usecase.ObjectStorage
	migrate       func(ctx context.Context) error
}

// New construye el contenedor. El cleanup devuelto cierra el pool de conexiones.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, func(), error) {
	policy, err := dom.ParsePolicy(cfg.Onboarding.StorePolicy)
	if err != nil {
		return nil, nil, err
	}

	repos, cleanup, err := newRepositories(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if repos.objects == nil {
		if repos.objects, err = newObjectStorage(cfg.Storage, log); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	var notifier onboarding.Notifier
	if cfg.SMTP.Enabled() {
		notifier = mail.NewSMTPNotifier(cfg.SMTP, cfg.App.Name, log)
		log.Info().Str("host", cfg.SMTP.Host).Msg("notificador SMTP habilitado")
	} else {
		notifier = mail.NewLogNotifier(log)
		log.Warn().Msg("SMTP_HOST vacío: los correos solo se registran en el log")
	}

	workflow := onboarding.NewWorkflowUseCase(repos.tx, repos.candidates, repos.steps, notifier, policy, log)
	c := &Container{
		Workflow: workflow,
		Auth: auth.NewAuthUseCase(repos.users, repos.candidates, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Users:         usecase.NewUserUseCase(repos.users),
		Summary:       analytics.NewSummaryUseCase(repos.candidates, repos.steps),
		Reports:       report.NewReportUseCase(workflow, infrapdf.NewMarotoReportGenerator(cfg.App.Name), export.NewTimelineXMLExporter()),
		Documents:     usecase.NewDocumentUseCase(repos.documents, repos.candidates, repos.objects),
		Notifications: usecase.NewNotificationUseCase(repos.notifications),
		Migrate:       repos.migrate,
	}
	return c, cleanup, nil
}

func newRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, func(), error) {
	switch cfg.Onboarding.StoreBackend {
	case "memory":
		log.Warn().Msg("STORE_BACKEND=memory: los datos se pierden al reiniciar")
		s := memory.New()
		return &repositories{
			tx:            memory.NewTxRunner(s),
			candidates:    s.Candidates(),
			steps:         s.Steps(),
			users:         s.Users(),
			notifications: s.Notifications(),
			documents:     s.Documents(),
			objects:       s.Objects(),
			migrate:       func(context.Context) error { return nil },
		}, func() {}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &repositories{
			tx:            postgres.NewTxRunner(pool),
			candidates:    postgres.NewCandidateRepository(pool),
			steps:         postgres.NewStepRecordRepository(pool),
			users:         postgres.NewUserRepository(pool),
			notifications: postgres.NewNotificationRepository(pool),
			documents:     postgres.NewDocumentRepository(pool),
			migrate:       func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
		}, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("STORE_BACKEND desconocido: %q", cfg.Onboarding.StoreBackend)
}

// newObjectStorage S3 si hay endpoint o credenciales; si no, binarios en memoria.
func newObjectStorage(cfg config.StorageConfig, log *logger.Logger) (usecase.ObjectStorage, error) {
	if cfg.Endpoint == "" && cfg.AccessKey == "" {
		log.Warn().Msg("S3 sin configurar: documentos en memoria")
		return memory.New().Objects(), nil
	}
	s3, err := storage.NewS3Storage(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("bucket", cfg.Bucket).Str("endpoint", cfg.Endpoint).Msg("almacenamiento S3 habilitado")
	return s3, nil
}
