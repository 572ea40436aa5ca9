// Package config provides configuration management for cnpjdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > .env file >
// config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Pipeline: mode, sample_rows, sample_files_per_type, sample_force
//   - Download: base_url, lookback_periods
//   - Log: level, format, destination
//   - General: data_root
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CNPJDB_ prefix with underscores for nesting:
//
//	CNPJDB_DATABASE_HOST=localhost
//	CNPJDB_PIPELINE_MODE=sample
//	CNPJDB_PIPELINE_SAMPLE_ROWS=10000
//	CNPJDB_DATA_ROOT=/mnt/external/cnpj
//
// Names used by the older shell tooling (PIPELINE_MODE, SAMPLE_ROWS,
// SAMPLE_FILES_PER_TYPE, SAMPLE_FORCE, DATA_ROOT, DB_HOST, DB_PORT,
// DB_NAME, DB_USER, DB_PASSWORD) are accepted as well.
package config

// Mode values for PipelineConfig.Mode.
const (
	// ModeFull extracts every member unfiltered and uncapped.
	ModeFull = "full"
	// ModeSample extracts a capped, referentially consistent subset.
	ModeSample = "sample"
)

// Config represents the complete cnpjdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Pipeline contains extraction and load settings.
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline"`

	// Download contains settings of the acquisition stage.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// DataRoot is the directory that holds raw, processed and
	// processed_sample subdirectories. When empty, a directory inside
	// the user's data dir is used. When set, it must exist: cnpjdb refuses
	// to fall back to another disk.
	DataRoot string `mapstructure:"data_root" yaml:"data_root"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// PipelineConfig contains settings of extraction and load stages.
type PipelineConfig struct {
	// Mode is either "full" or "sample". Full mode extracts archive members
	// unmodified; sample mode keeps at most SampleRows rows per member and
	// drops dependent rows whose key is not among extracted companies.
	Mode string `mapstructure:"mode" yaml:"mode"`

	// SampleRows is the maximum number of accepted rows per output file
	// in sample mode.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`

	// SampleFilesPerType limits how many archives of each kind
	// (Empresas, Estabelecimentos, Socios) are downloaded and extracted in
	// sample mode.
	SampleFilesPerType int `mapstructure:"sample_files_per_type" yaml:"sample_files_per_type"`

	// SampleForce makes extraction rewrite outputs that already exist.
	SampleForce bool `mapstructure:"sample_force" yaml:"sample_force"`
}

// DownloadConfig contains settings for discovering and fetching archives.
type DownloadConfig struct {
	// BaseURL is the listing page with one YYYY-MM folder per release.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// LookbackPeriods is how many of the newest release folders are tried
	// before giving up.
	LookbackPeriods int `mapstructure:"lookback_periods" yaml:"lookback_periods"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "cnpj",
			Password: "cnpj123",
			Database: "cnpjdb",
			SSLMode:  "disable",
		},
		Pipeline: PipelineConfig{
			Mode:               ModeSample,
			SampleRows:         50_000,
			SampleFilesPerType: 1,
		},
		Download: DownloadConfig{
			BaseURL:         DefaultBaseURL,
			LookbackPeriods: 3,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// IsSample returns true when the pipeline runs in sample mode.
func (c *Config) IsSample() bool {
	return c.Pipeline.Mode == ModeSample
}
