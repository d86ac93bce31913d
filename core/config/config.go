package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"dbcompare/core/compare"
	"dbcompare/core/database"
	"dbcompare/core/filter"
	"dbcompare/core/fingerprint"
	"dbcompare/core/logger"
	"dbcompare/core/server"
	"dbcompare/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when the configuration cannot start a comparison.
var ErrInvalidConfig = errors.New("invalid configuration")

// Databases holds the two sides of the comparison.
type Databases struct {
	// Old is the reference database.
	Old database.Config `mapstructure:"old"`
	// New is the database checked against Old.
	New database.Config `mapstructure:"new"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Database holds the old and new connections.
	Database Databases `mapstructure:"database"`
	// Compare holds the comparison settings.
	Compare compare.Config `mapstructure:"compare"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage backend.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from the .env file, an optional config.yaml
// and environment variables, in increasing order of precedence.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	// Map environment variables to nested keys (e.g. DATABASE_OLD_DSN -> database.old.dsn)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// Validate checks everything a comparison needs before any table is touched.
func (c *Config) Validate() error {
	sides := []struct {
		name string
		cfg  database.Config
	}{
		{"old", c.Database.Old},
		{"new", c.Database.New},
	}
	for _, side := range sides {
		if !side.cfg.IsConfigured() {
			return fmt.Errorf("%w: %s database connection is missing", ErrInvalidConfig, side.name)
		}
		if !side.cfg.IsValidDriver() {
			return fmt.Errorf("%w: %s database driver %q is not supported", ErrInvalidConfig, side.name, side.cfg.Driver)
		}
	}

	if _, err := filter.CompileAll(c.Compare.Exclude); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Compare.HashMode {
	case fingerprint.ModeAuto, fingerprint.ModeServer, fingerprint.ModeClient:
	default:
		return fmt.Errorf("%w: unknown hash mode %q", ErrInvalidConfig, c.Compare.HashMode)
	}

	switch c.Compare.Backend {
	case compare.BackendDisk:
	case compare.BackendS3:
		if c.Storage.Endpoint == "" || c.Storage.Bucket == "" {
			return fmt.Errorf("%w: s3 backend requires storage endpoint and bucket", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown artifact backend %q", ErrInvalidConfig, c.Compare.Backend)
	}

	if c.Compare.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Compare.Workers)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
