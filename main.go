package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pvn-digital/initiative-catalog/api"
	"github.com/pvn-digital/initiative-catalog/config"
	"github.com/pvn-digital/initiative-catalog/database"
	"github.com/pvn-digital/initiative-catalog/models"
)

// envFiles is shared by every subcommand through the root's persistent flag.
var envFiles []string

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "initiative-catalog",
		Short: "Digital initiative catalog backend",
		Long: `Serves the catalog of digital initiatives, links them to the
external database catalog and keeps the admin activity log.

Without a subcommand the HTTP server is started.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "env files loaded before reading the configuration")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		newReconcileCommand(),
		newGenerateModelsCommand(),
		&cobra.Command{
			Use:   "column-report",
			Short: "Compare database columns with the gorm models",
			RunE:  runColumnReport,
		},
	)
	return root
}

// connect loads the configuration and opens the row store.
func connect(ctx context.Context) (map[string]string, *gorm.DB, error) {
	c, err := config.Load(ctx, envFiles...)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	db, err := database.Connect(c)
	if err != nil {
		return nil, nil, err
	}
	return c, db, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	log.Info().Msg("Initializing app...")
	ctx := cmd.Context()

	c, db, err := connect(ctx)
	if err != nil {
		return err
	}

	svc, err := api.NewServices(ctx, c, database.New(db))
	if err != nil {
		return err
	}

	// the server starts even when the first load fails; /initiatives/refresh retries
	if _, err := svc.Catalog.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial catalog load failed")
	}

	server, err := api.NewServer(c, svc)
	if err != nil {
		return err
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(config.GetDuration(c, "SHUTDOWN_TIMEOUT_SECONDS", time.Second, 30))
	return nil
}

func newReconcileCommand() *cobra.Command {
	var persist bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Link initiatives to external database names",
		Long: `Matches every initiative against the external database catalog and
prints the initiatives that would gain links. With --persist the new
link lists are written back.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, db, err := connect(ctx)
			if err != nil {
				return err
			}

			svc, err := api.NewServices(ctx, c, database.New(db))
			if err != nil {
				return err
			}
			if _, err := svc.Catalog.Refresh(ctx); err != nil {
				return err
			}

			result, err := svc.Catalog.Reconcile(ctx, persist)
			out := cmd.OutOrStdout()
			for _, name := range result.Changed {
				fmt.Fprintln(out, name)
			}
			fmt.Fprintf(out, "%d initiative(s) gained links (persisted: %t)\n", len(result.Changed), persist)
			return err
		},
	}
	cmd.Flags().BoolVar(&persist, "persist", false, "write the new links to the row store")
	return cmd
}

func newGenerateModelsCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate-models",
		Short: "Migrate the owned tables and generate query helpers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			log.Info().Str("out", outPath).Msg("Generating models and query helpers...")
			return models.GenerateModels(db, outPath)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "./query", "output directory for the generated query package")
	return cmd
}

func runColumnReport(cmd *cobra.Command, _ []string) error {
	_, db, err := connect(cmd.Context())
	if err != nil {
		return err
	}

	mismatches, err := models.GenerateColumnMismatchReport(db, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if mismatches > 0 {
		return fmt.Errorf("%d column mismatch(es) found", mismatches)
	}
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
