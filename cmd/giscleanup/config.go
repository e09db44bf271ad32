package main

import (
	"fmt"
	"os"

	"github.com/aatumaykin/giscleanup/internal/config"
	"github.com/aatumaykin/giscleanup/internal/constants"
	"github.com/aatumaykin/giscleanup/internal/logger"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate and manage giscleanup configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long:  `Validate the configuration file and check for errors.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log, err := logger.New(logger.Config{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}

		configPath := constants.DefaultConfigPath
		if len(args) > 0 {
			configPath = args[0]
		}

		log.Info("Validating configuration", logger.Field{Key: "path", Value: configPath})

		cfg, err := config.Load(configPath)
		if err != nil {
			log.Error("Failed to load config", err)
			os.Exit(1)
		}

		errors := cfg.Validate()
		if len(errors) > 0 {
			log.Error("Config validation failed", fmt.Errorf("%d errors", len(errors)))
			for _, e := range errors {
				log.Error("Validation error", e)
			}
			os.Exit(1)
		}

		log.Info("Configuration is valid")
	},
}

// sampleConfig is written by `config init`.
const sampleConfig = `[portal]
url = "https://www.arcgis.com"
username = "${PORTAL_USERNAME}"
password = "${PORTAL_PASSWORD}"
# token = ""            # pre-issued token, skips generateToken
# timeout_seconds = 30

[thresholds]
years_unviewed = 1
years_inactive = 4
years_unmodified = 8

[limits]
max_users = 1000
max_items_per_user = 100

[output]
dir = "."

[logging]
level = "info"
format = "text"
output = "stderr"
`

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [config-file]",
	Short: "Write a sample configuration file",
	Long:  `Write a commented sample configuration file. Refuses to overwrite an existing file.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configPath := constants.DefaultConfigPath
		if len(args) > 0 {
			configPath = args[0]
		}

		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("❌ %s already exists, not overwriting\n", configPath)
			os.Exit(1)
		}

		if err := os.WriteFile(configPath, []byte(sampleConfig), 0644); err != nil {
			fmt.Printf("❌ Failed to write %s: %v\n", configPath, err)
			os.Exit(1)
		}

		fmt.Printf("✅ Sample configuration written to %s\n", configPath)
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
}
