package compare

// Config holds the comparison settings.
type Config struct {
	// Exclude lists SQL LIKE wildcards matched against "schema.table".
	Exclude []string `mapstructure:"exclude" default:""`
	// Workers is the number of tables compared concurrently.
	Workers int `mapstructure:"workers" default:"1"`
	// HashMode selects where rows are hashed (auto, server, client).
	HashMode string `mapstructure:"hash_mode" default:"auto"`
	// Backend selects where fingerprint artifacts are kept (disk, s3).
	Backend string `mapstructure:"backend" default:"disk"`
	// TempDir is the artifact directory of the disk backend. Empty means the system temp dir.
	TempDir string `mapstructure:"temp_dir" default:""`
	// Prefix is prepended to every artifact name (object key prefix for s3).
	Prefix string `mapstructure:"prefix" default:""`
	// UniqueNames prefixes artifacts with the run id so overlapping runs never share files.
	UniqueNames bool `mapstructure:"unique_names" default:"false"`
}

const (
	BackendDisk = "disk"
	BackendS3   = "s3"
)
