// Package config provides configuration management for dbcompare.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml. Defaults come from the `default`
// struct tags of every section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Database: the old and new connections (driver, DSN or host fields)
//   - Compare: exclusion patterns, workers, hash mode, artifact backend
//   - Log: level, format and the append-only log file
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials for the s3 artifact backend
//
// Environment variables map to nested keys by replacing dots with
// underscores, e.g. DATABASE_OLD_DSN or COMPARE_EXCLUDE="dbo.Audit%,%.tmp_%".
//
// # Validation
//
// Validate reports every problem that must stop a run before any comparison
// starts. Its errors wrap ErrInvalidConfig.
//
//	cfg, err := config.LoadConfig(".")
//	if err == nil {
//	    err = cfg.Validate()
//	}
package config
