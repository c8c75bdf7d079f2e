package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/bootstrap"
	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// memoryLoader comparte un mismo contenedor en memoria entre ejecuciones.
func memoryLoader(t *testing.T) (loader, *bootstrap.Container) {
	t.Helper()
	cfg := &config.Config{
		App:        config.AppConfig{Name: "onboardctl-test"},
		JWT:        config.JWTConfig{Secret: "s", Expiration: 60, Issuer: "test"},
		Onboarding: config.OnboardingConfig{StorePolicy: "upsert", StoreBackend: "memory"},
	}
	c, _, err := bootstrap.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	return func(context.Context) (*bootstrap.Container, func(), error) { return c, func() {}, nil }, c
}

func run(t *testing.T, load loader, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(load)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	load, _ := memoryLoader(t)
	out, err := run(t, load, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migraciones aplicadas")
}

func TestUserCreate(t *testing.T) {
	load, _ := memoryLoader(t)
	out, err := run(t, load, "user", "create", "--email", "rrhh@acme.com", "--password", "supersecret", "--first-name", "Rita")
	require.NoError(t, err)
	assert.Contains(t, out, "rrhh@acme.com (hr)")

	_, err = run(t, load, "user", "create", "--email", "rrhh@acme.com", "--password", "supersecret", "--first-name", "Rita")
	assert.Error(t, err)
}

func TestRecomputeYForceComplete(t *testing.T) {
	load, c := memoryLoader(t)
	ctx := context.Background()
	enr, err := c.Workflow.EnrollCandidate(ctx, onboarding.Profile{Email: "ana@acme.com", FirstName: "Ana"})
	require.NoError(t, err)
	id := enr.Candidate.ID

	_, err = c.Workflow.ReportStepUpdate(ctx, enr.Candidate.Key(), "bgv", "failed", nil)
	require.NoError(t, err)

	out, err := run(t, load, "force-complete", "ana@acme.com", "bgv")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")

	out, err = run(t, load, "recompute", fmt.Sprint(id))
	require.NoError(t, err)
	assert.Contains(t, out, "22%")

	out, err = run(t, load, "recompute", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "1 candidatos recalculados")
}

func TestRecompute_Argumentos(t *testing.T) {
	load, _ := memoryLoader(t)
	_, err := run(t, load, "recompute")
	assert.Error(t, err)

	_, err = run(t, load, "recompute", "abc")
	assert.Error(t, err)

	_, err = run(t, load, "force-complete", "nobody@x.com", "bgv")
	assert.Error(t, err)
}
