package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptPipelineMode sets the extraction mode.
// Valid values: "full", "sample".
func OptPipelineMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Pipeline.Mode", s) {
			c.Pipeline.Mode = s
		}
	}
}

// OptPipelineSampleRows sets the cap of accepted rows per output file.
func OptPipelineSampleRows(i int) Option {
	return func(c *Config) {
		if isValidInt("Sample Rows", i) {
			c.Pipeline.SampleRows = i
		}
	}
}

// OptPipelineSampleFilesPerType sets how many archives of each kind are
// used in sample mode.
func OptPipelineSampleFilesPerType(i int) Option {
	return func(c *Config) {
		if isValidInt("Sample Files Per Type", i) {
			c.Pipeline.SampleFilesPerType = i
		}
	}
}

// OptPipelineSampleForce makes extraction rewrite existing outputs.
func OptPipelineSampleForce(b bool) Option {
	return func(c *Config) {
		c.Pipeline.SampleForce = b
	}
}

// OptDownloadBaseURL sets the page that lists release folders.
func OptDownloadBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if !isValidString("Download Base URL", s) {
			return
		}
		if !strings.HasSuffix(s, "/") {
			s += "/"
		}
		c.Download.BaseURL = s
	}
}

// OptDownloadLookbackPeriods sets how many newest release folders are
// tried during acquisition.
func OptDownloadLookbackPeriods(i int) Option {
	return func(c *Config) {
		if isValidInt("Lookback Periods", i) {
			c.Download.LookbackPeriods = i
		}
	}
}

// OptDataRoot sets the directory for raw and processed data.
func OptDataRoot(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Root", s) {
			c.DataRoot = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
