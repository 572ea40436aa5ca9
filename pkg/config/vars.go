package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "cnpjdb"

	// DefaultBaseURL is the public listing of CNPJ open data releases.
	DefaultBaseURL = "https://arquivos.receitafederal.gov.br/dados/cnpj/dados_abertos_cnpj/"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/cnpjdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/cnpjdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DefaultDataRoot returns the data directory used when data_root is not
// configured. Returns ~/.local/share/cnpjdb/data.
func DefaultDataRoot(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/cnpjdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DataRootDir returns the configured data root, or the default one.
func (c *Config) DataRootDir() string {
	if c.DataRoot != "" {
		return c.DataRoot
	}
	return DefaultDataRoot(c.HomeDir)
}

// RawDir keeps downloaded archives.
func (c *Config) RawDir() string {
	return filepath.Join(c.DataRootDir(), "raw")
}

// ProcessedDir keeps full mode outputs.
func (c *Config) ProcessedDir() string {
	return filepath.Join(c.DataRootDir(), "processed")
}

// SampleDir keeps sample mode outputs.
func (c *Config) SampleDir() string {
	return filepath.Join(c.DataRootDir(), "processed_sample")
}

// OutputDir returns the directory extraction writes to and the loader
// reads from in the current mode.
func (c *Config) OutputDir() string {
	if c.IsSample() {
		return c.SampleDir()
	}
	return c.ProcessedDir()
}
