package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding, json or console.
	Format string `mapstructure:"format" default:"console"`
	// File is the append-only log sink. Empty logs to stderr only.
	File string `mapstructure:"file" default:""`
	// Console keeps stderr output when File is set.
	Console bool `mapstructure:"console" default:"true"`
}
