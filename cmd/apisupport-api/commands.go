package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apisupport/internal/core/version"
	"apisupport/internal/modkit"
	"apisupport/internal/modkit/repokit"
	"apisupport/internal/platform/config"
	"apisupport/internal/platform/logger"
	phttp "apisupport/internal/platform/net/http"
	"apisupport/internal/platform/store"
	"apisupport/internal/services/api"
	queuesmod "apisupport/internal/services/api/queues/module"
	queuessvc "apisupport/internal/services/api/queues/service"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	info := version.Info()
	root := &cobra.Command{
		Use:           version.Service,
		Short:         "Serve and manage the queues API",
		Version:       fmt.Sprintf("%s (commit %s, built %s, %s)", info.Version, info.Commit, info.Date, info.GoVersion),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	var grace time.Duration
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := config.New()
			l := logger.Get()

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(st)
			repokit.MustGuard(ctx, st)

			srv := phttp.NewServer(api.ServerOptions(cfg))
			opt := api.FromConfig(cfg)
			opt.Store = st
			queues, err := api.Mount(srv.Router(), opt)
			if err != nil {
				return err
			}
			if migrate {
				if err := queues.Service().Migrate(ctx); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			l.Info().Str("addr", srv.Addr()).Msg("serving " + version.Service)
			return srv.Run(ctx, grace)
		},
	}

	cmd.Flags().DurationVar(&grace, "grace", 10*time.Second, "shutdown grace period")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the schema before serving")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the queues schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withQueues(cmd.Context(), func(ctx context.Context, svc *queuessvc.Svc) error {
				if err := svc.Migrate(ctx); err != nil {
					return err
				}
				logger.Get().Info().Msg("schema ready")
				return nil
			})
		},
	}
}

func newSeedCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture queues into an empty table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			return withQueues(cmd.Context(), func(ctx context.Context, svc *queuessvc.Svc) error {
				if err := svc.Migrate(ctx); err != nil {
					return err
				}
				n, err := svc.Seed(ctx, count)
				if err != nil {
					return err
				}
				cmd.Printf("seeded %d queues\n", n)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 25, "number of fixture queues")
	return cmd
}

// withQueues opens the configured store and hands fn the queues service
func withQueues(ctx context.Context, fn func(context.Context, *queuessvc.Svc) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx, config.New())
	if err != nil {
		return err
	}
	defer closeStore(st)

	sql, err := st.SQL()
	if err != nil {
		return err
	}
	return fn(ctx, queuesmod.New(modkit.Deps{SQL: sql, Store: st}).Service())
}

func openStore(ctx context.Context, cfg config.Conf) (*store.Store, error) {
	st, err := store.Open(ctx, api.StoreConfig(cfg), store.WithLogger(*logger.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("store open: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close store")
	}
}
