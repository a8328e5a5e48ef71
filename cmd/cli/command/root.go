package command

// root.go defines videohub-admin, the operator console for a videohub
// database. Commands talk to PostgreSQL directly, not through the API.

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"videohub/database"
	"videohub/internal/config"
	"videohub/internal/logging"
	"videohub/internal/microservices/http-api/repository"
	"videohub/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

// app holds what the subcommands need. Tests replace newApp to inject fakes.
type app struct {
	genres  service.GenreService
	auth    service.AuthService
	tokens  repository.RefreshTokenRepository
	migrate func() error
	close   func()
}

var newApp = func() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})

	// no migration here so that dedupe can run before unique indexes exist
	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	videoStats := repository.NewVideoStatsRepository(db)
	return &app{
		genres: service.NewGenreService(repository.NewGenreRepo(db), service.NewProjector(videoStats)),
		auth: service.NewAuthService(
			repository.NewUserRepository(db),
			repository.NewRefreshTokenRepository(db),
			cfg,
		),
		tokens:  repository.NewRefreshTokenRepository(db),
		migrate: func() error { return database.Migrate(db) },
		close:   func() { _ = database.Close(db) },
	}, nil
}

var current *app

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "videohub-admin",
	Short: "videohub-admin - videohub operator console",
	Long: `videohub-admin manages a videohub database directly:
- apply the schema
- merge duplicate genres left by older releases
- promote users and create administrators
- purge expired refresh tokens`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if current != nil {
			return nil
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if current != nil && current.close != nil {
			current.close()
		}
		current = nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return context.WithTimeout(cmd.Context(), timeout)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.migrate(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintln(out(cmd), "schema up to date")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Duration("timeout", 2*time.Minute, "timeout for database operations")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(genreCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
}
