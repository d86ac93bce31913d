package database

// Config holds configuration for one database connection.
type Config struct {
	// Driver is the database driver (mysql, postgres, sqlite, sqlserver).
	Driver string `mapstructure:"driver" default:"mysql"`
	// DSN is the full connection string. When set it takes precedence over
	// the individual host fields below.
	DSN string `mapstructure:"dsn" default:""`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port. Zero selects the default port of Driver.
	Port int `mapstructure:"port" default:"0"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (or file path for sqlite).
	Name string `mapstructure:"name" default:""`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxOpenConns caps the connection pool.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"10"`
}

const (
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)

var defaultPorts = map[string]int{
	DriverMySQL:     3306,
	DriverPostgres:  5432,
	DriverSQLServer: 1433,
}

// EffectivePort returns Port, or the engine's standard port when Port is unset.
func (c Config) EffectivePort() int {
	if c.Port > 0 {
		return c.Port
	}
	if c.Driver == "" {
		return defaultPorts[DriverMySQL]
	}
	return defaultPorts[c.Driver]
}

// IsConfigured reports whether enough information is present to open a connection.
func (c Config) IsConfigured() bool {
	return c.DSN != "" || c.Name != ""
}

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverSQLServer:
		return true
	default:
		return false
	}
}
