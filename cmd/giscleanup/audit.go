package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aatumaykin/giscleanup/internal/config"
	"github.com/aatumaykin/giscleanup/internal/constants"
	"github.com/aatumaykin/giscleanup/internal/controller"
	"github.com/aatumaykin/giscleanup/internal/logger"
	"github.com/aatumaykin/giscleanup/internal/portal"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	auditConfigPath string
	auditEnvPath    string
	auditDebug      bool
	auditReportOnly bool
	auditFixtures   string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run an interactive cleanup audit",
	Long: `Scan the organization for inactive users and their stale content,
export review CSVs, and interactively offer a report-only, cancel, or
confirm-and-remove path. Nothing is deleted without the two-step
confirmation.`,
	Run: auditHandler,
}

func auditHandler(cmd *cobra.Command, args []string) {
	// Load .env before the config so ${VAR} references resolve
	envPath := auditEnvPath
	if envPath == "" {
		envPath = constants.DefaultEnvPath
	}
	if err := config.LoadEnvOptional(envPath); err != nil {
		fmt.Printf("❌ Failed to load env file: %v\n", err)
		os.Exit(1)
	}

	configPath := auditConfigPath
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}

	cfg, err := loadAuditConfig(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Fixture runs need no live credentials
	if auditFixtures != "" {
		cfg.Portal.Token = "offline"
		if cfg.Portal.URL == "" {
			cfg.Portal.URL = "https://www.arcgis.com"
		}
	}

	if errors := cfg.Validate(); len(errors) > 0 {
		fmt.Printf("❌ Configuration validation failed:\n")
		for _, e := range errors {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	if auditDebug {
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	runID := uuid.NewString()
	log = log.With(logger.Field{Key: "run_id", Value: runID})

	log.Info("🧹 Starting audit",
		logger.Field{Key: "version", Value: Version},
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "output_dir", Value: cfg.Output.Dir},
		logger.Field{Key: "report_only", Value: auditReportOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider portal.Portal
	if auditFixtures != "" {
		fixtureProvider, err := portal.LoadFixture(auditFixtures)
		if err != nil {
			fmt.Printf("❌ Failed to load fixtures: %v\n", err)
			os.Exit(1)
		}
		log.Info("running against fixtures",
			logger.Field{Key: "path", Value: auditFixtures})
		provider = fixtureProvider
	} else {
		client := portal.NewClient(portal.ClientConfig{
			URL:            cfg.Portal.URL,
			Username:       cfg.Portal.Username,
			Password:       cfg.Portal.Password,
			Token:          cfg.Portal.Token,
			TimeoutSeconds: cfg.Portal.TimeoutSeconds,
		}, log)
		if err := client.Connect(ctx); err != nil {
			fmt.Printf("❌ Failed to authenticate against portal: %v\n", err)
			os.Exit(1)
		}
		provider = client
	}

	ctrl := controller.New(provider, controller.Options{
		Thresholds: cfg.Thresholds,
		Limits:     cfg.Limits,
		OutputDir:  cfg.Output.Dir,
		HomeURL:    strings.TrimRight(cfg.Portal.URL, "/"),
		ReportOnly: auditReportOnly,
	}, os.Stdin, os.Stdout, log)

	state, err := ctrl.Run(ctx)
	if err != nil {
		fmt.Printf("❌ Audit failed: %v\n", err)
		os.Exit(1)
	}

	log.Info("✅ Audit finished", logger.Field{Key: "state", Value: state.String()})
}

// loadAuditConfig loads the config file, or falls back to defaults for
// fixture runs when no config file exists.
func loadAuditConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && auditFixtures != "" && auditConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func init() {
	auditCmd.Flags().StringVarP(&auditConfigPath, "config", "c", "", "path to config file (default ./config.toml)")
	auditCmd.Flags().StringVar(&auditEnvPath, "env", "", "path to .env file (default ./.env)")
	auditCmd.Flags().BoolVar(&auditDebug, "debug", false, "enable debug logging")
	auditCmd.Flags().BoolVar(&auditReportOnly, "report-only", false, "skip the interactive choice and generate a report")
	auditCmd.Flags().StringVar(&auditFixtures, "fixtures", "", "run against a YAML fixture file instead of a live portal")
}
