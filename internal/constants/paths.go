package constants

// DefaultEnvPath is the default path to the .env file
const DefaultEnvPath = "./.env"

// DefaultConfigPath is the default path to the config.toml file
const DefaultConfigPath = "./config.toml"

// DefaultOutputDir is the default directory for generated artifacts
const DefaultOutputDir = "."

// InactiveUsersFilePattern names the inactive users CSV, %s is the run timestamp
const InactiveUsersFilePattern = "inactive_users_%s.csv"

// FlaggedItemsFilePattern names the flagged items CSV, %s is the run timestamp
const FlaggedItemsFilePattern = "flagged_items_%s.csv"

// ReportFilePattern names the cleanup report, %s is the run timestamp
const ReportFilePattern = "cleanup_report_%s.txt"
