package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Name: "onboarding-test"},
		JWT:        config.JWTConfig{Secret: "s", Expiration: 60, Issuer: "test"},
		Onboarding: config.OnboardingConfig{StorePolicy: "append", StoreBackend: "memory"},
	}
}

func TestNew_BackendMemoria(t *testing.T) {
	c, cleanup, err := New(context.Background(), memoryConfig(), logger.Nop())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, c.Workflow)
	assert.Equal(t, "append", string(c.Workflow.Policy()))
	assert.NoError(t, c.Migrate(context.Background()))
}

func TestNew_PoliticaInvalida(t *testing.T) {
	cfg := memoryConfig()
	cfg.Onboarding.StorePolicy = "merge"
	_, _, err := New(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestNew_BackendDesconocido(t *testing.T) {
	cfg := memoryConfig()
	cfg.Onboarding.StoreBackend = "sqlite"
	_, _, err := New(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
