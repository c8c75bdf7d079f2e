package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Onboarding-api/internal/application/dto"
	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/bootstrap"
	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"
)

// recomputeWorkers recálculos concurrentes con --all (cada uno toma su propio lock de candidato).
const recomputeWorkers = 4

// loader construye el contenedor; los tests inyectan uno en memoria.
type loader func(ctx context.Context) (*bootstrap.Container, func(), error)

func loadContainer(ctx context.Context) (*bootstrap.Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})
	return bootstrap.New(ctx, cfg, log)
}

func newRootCmd(load loader) *cobra.Command {
	var (
		container *bootstrap.Container
		cleanup   = func() {}
	)
	root := &cobra.Command{
		Use:           "onboardctl",
		Short:         "Operación del motor de onboarding",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, done, err := load(cmd.Context())
			if err != nil {
				return fmt.Errorf("inicializar: %w", err)
			}
			container, cleanup = c, done
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) { cleanup() },
	}
	get := func() *bootstrap.Container { return container }

	root.AddCommand(
		newMigrateCmd(get),
		newRecomputeCmd(get),
		newForceCompleteCmd(get),
		newUserCmd(get),
	)
	return root
}

func newMigrateCmd(get func() *bootstrap.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea o actualiza el esquema de base de datos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := get().Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migraciones aplicadas")
			return nil
		},
	}
}

func newRecomputeCmd(get func() *bootstrap.Container) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "recompute [candidateId]",
		Short: "Recalcula el progreso a partir de los registros de pasos",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := get().Workflow
			if !all {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("candidateId inválido: %q", args[0])
				}
				p, err := wf.RecomputeProgress(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "candidato %d: %d%%\n", id, p)
				return nil
			}
			n, err := recomputeAll(cmd.Context(), wf)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d candidatos recalculados\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "recalcular todos los candidatos")
	return cmd
}

func recomputeAll(ctx context.Context, wf *onboarding.WorkflowUseCase) (int, error) {
	const page = 100
	total := 0
	for offset := 0; ; offset += page {
		list, err := wf.ListCandidates(ctx, page, offset)
		if err != nil {
			return total, err
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(recomputeWorkers)
		for _, c := range list {
			id := c.ID
			g.Go(func() error {
				_, err := wf.RecomputeProgress(gctx, id)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return total, err
		}
		total += len(list)
		if len(list) < page {
			return total, nil
		}
	}
}

func newForceCompleteCmd(get func() *bootstrap.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "force-complete <candidateId|email> <stepId>",
		Short: "Marca un paso existente como completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, _ := onboarding.ParseCandidateKey(args[0])
			rec, err := get().Workflow.ForceCompleteStep(cmd.Context(), key, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "paso %s de %s: %s\n", rec.StepID, key, rec.Status)
			return nil
		},
	}
}

func newUserCmd(get func() *bootstrap.Container) *cobra.Command {
	user := &cobra.Command{Use: "user", Short: "Usuarios de RRHH"}

	var in dto.CreateUserRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario hr o admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := get().Auth.CreateStaffUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s (%s) creado con id %s\n", out.Email, out.Role, out.ID)
			return nil
		},
	}
	f := create.Flags()
	f.StringVar(&in.Email, "email", "", "email del usuario")
	f.StringVar(&in.Password, "password", "", "password (mínimo 8 caracteres)")
	f.StringVar(&in.FirstName, "first-name", "", "nombre")
	f.StringVar(&in.LastName, "last-name", "", "apellido")
	f.StringVar(&in.Role, "role", "hr", "rol: hr | admin")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	user.AddCommand(create)
	return user
}
