package constants

// DefaultVersion is the default version of the application
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is the default build time when not provided at build time
const DefaultBuildTime = "unknown"

// DefaultGitCommit is the default git commit hash when not provided at build time
const DefaultGitCommit = "unknown"

// DefaultYearsUnviewed is the default staleness threshold for item views
const DefaultYearsUnviewed = 1

// DefaultYearsInactive is the default inactivity threshold for user logins
const DefaultYearsInactive = 4

// DefaultYearsUnmodified is the default staleness threshold for item modifications
const DefaultYearsUnmodified = 8

// DefaultMaxUsers caps a single user directory fetch
const DefaultMaxUsers = 1000

// DefaultMaxItemsPerUser caps a single content search per owner
const DefaultMaxItemsPerUser = 100

// DefaultPortalTimeoutSeconds is the default HTTP timeout for portal calls
const DefaultPortalTimeoutSeconds = 30
