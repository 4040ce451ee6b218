// Package root contains the root command for the application
package root

import (
	"context"
	"strings"

	"fjacquet/xact-rollup/internal/common"
	"fjacquet/xact-rollup/internal/config"
	"fjacquet/xact-rollup/internal/container"
	"fjacquet/xact-rollup/internal/logging"

	"github.com/spf13/cobra"
)

// Version is the application version surfaced via the root command and the
// health endpoint.
const Version = "1.0.0"

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Format   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the resolved application configuration, available after
	// PersistentPreRun
	Cfg *config.Config

	app *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:     "xact-rollup",
		Version: Version,
		Short:   "A CLI tool to categorize and aggregate insurance estimate line items.",
		Long: `xact-rollup ingests structured insurance-estimate line items, removes
duplicate lines, assigns each item to a trade category with a
priority-ordered keyword rule table, and rolls the result up into ordered
per-category financial totals for a contractor-pricing workflow.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to xact-rollup!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env before viper reads the environment
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}

			// Command-line flags outrank config file and environment
			if logLevel != "" {
				cfg.Log.Level = strings.ToLower(logLevel)
			}
			if logFormat != "" {
				cfg.Log.Format = strings.ToLower(logFormat)
			}

			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			logging.SetDefaultLogger(Log)

			common.SetLogger(Log)
			if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
		// Release container resources (the AI client connection) when ANY
		// command finishes
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			CloseApp()
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific batch command flags
	InputDir  string
	OutputDir string

	// Specific categorize command flags
	Description string
	Room        string

	// Root persistent logging flags
	logLevel  string
	logFormat string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Input format (csv, json, xlsx, xml); detected from the file extension when omitted")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.Validate, "validate", false, "Validate file format before processing")
	Cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
}

// App returns the shared dependency container, building it on first use.
// Commands call this after PersistentPreRun has resolved the configuration.
func App() *container.Container {
	if app == nil {
		c, err := container.NewContainer(context.Background(), Cfg)
		if err != nil {
			Log.Fatalf("Failed to initialize application: %v", err)
		}
		app = c
	}
	return app
}

// CloseApp releases the container if one was built.
func CloseApp() {
	if app != nil {
		if err := app.Close(); err != nil {
			Log.WithError(err).Warn("Failed to close application container")
		}
		app = nil
	}
}
