package iofs

import (
	"os"

	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/cnpjdb/pkg/templates"
)

// EnsureDirs creates config and log directories inside homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDataDirs prepares raw, processed and processed_sample directories.
// A data root that was configured explicitly must exist already, only the
// default one is created.
func EnsureDataDirs(cfg *config.Config) error {
	root := cfg.DataRootDir()
	if cfg.DataRoot != "" {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return DataRootMissingError(root, err)
		}
	}

	dirs := []string{cfg.RawDir(), cfg.ProcessedDir(), cfg.SampleDir()}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644)
	if err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
