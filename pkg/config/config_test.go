package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "cnpjdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "cnpjdb", "logs"),
		},
		{
			msg: "default data root",
			fn:  config.DefaultDataRoot,
			res: filepath.Join(tempHome, ".local", "share", "cnpjdb", "data"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestDataDirs(t *testing.T) {
	t.Run("default data root", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptHomeDir("/home/u")})
		root := filepath.Join("/home/u", ".local", "share", "cnpjdb", "data")
		assert.Equal(t, filepath.Join(root, "raw"), cfg.RawDir())
		assert.Equal(t, filepath.Join(root, "processed"), cfg.ProcessedDir())
		assert.Equal(t, filepath.Join(root, "processed_sample"), cfg.SampleDir())
	})

	t.Run("output dir follows mode", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptDataRoot("/data")})
		assert.Equal(t, "/data/processed_sample", cfg.OutputDir())

		cfg.Update([]config.Option{config.OptPipelineMode("full")})
		assert.Equal(t, "/data/processed", cfg.OutputDir())
	})
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "cnpj", cfg.Database.User)
		assert.Equal(t, "cnpjdb", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		assert.Equal(t, config.ModeSample, cfg.Pipeline.Mode)
		assert.True(t, cfg.IsSample())
		assert.Equal(t, 50_000, cfg.Pipeline.SampleRows)
		assert.Equal(t, 1, cfg.Pipeline.SampleFilesPerType)
		assert.False(t, cfg.Pipeline.SampleForce)

		assert.Equal(t, config.DefaultBaseURL, cfg.Download.BaseURL)
		assert.Equal(t, 3, cfg.Download.LookbackPeriods)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
		assert.Empty(t, cfg.DataRoot)
	})
}

func TestOptionPipelineMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets full", input: "full", expected: "full"},
		{name: "sets sample", input: "sample", expected: "sample"},
		{name: "normalizes case", input: " FULL ", expected: "full"},
		{name: "ignores invalid value", input: "head", expected: "sample"},
		{name: "ignores empty", input: "", expected: "sample"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptPipelineMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Pipeline.Mode)
		})
	}
}

func TestOptionPipelineSampleRows(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "sets valid rows", input: 3, expected: 3},
		{name: "ignores zero", input: 0, expected: 50_000},
		{name: "ignores negative", input: -10, expected: 50_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptPipelineSampleRows(tt.input)})
			assert.Equal(t, tt.expected, cfg.Pipeline.SampleRows)
		})
	}
}

func TestOptionPipelineSampleFilesPerType(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptPipelineSampleFilesPerType(4)})
	assert.Equal(t, 4, cfg.Pipeline.SampleFilesPerType)

	cfg.Update([]config.Option{config.OptPipelineSampleFilesPerType(0)})
	assert.Equal(t, 4, cfg.Pipeline.SampleFilesPerType)
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets valid host", input: "db.example.com", expected: "db.example.com"},
		{name: "trims whitespace", input: "  db.example.com  ", expected: "db.example.com"},
		{name: "ignores empty string", input: "", expected: "localhost"},
		{name: "ignores whitespace-only", input: "   ", expected: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabaseSSLMode("REQUIRE")})
	assert.Equal(t, "require", cfg.Database.SSLMode)

	cfg.Update([]config.Option{config.OptDatabaseSSLMode("invalid")})
	assert.Equal(t, "require", cfg.Database.SSLMode)
}

func TestOptionDownloadBaseURL(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDownloadBaseURL("http://localhost:8080/cnpj")})
	assert.Equal(t, "http://localhost:8080/cnpj/", cfg.Download.BaseURL)
}

func TestOptionLogDestination(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptLogDestination("STDERR")})
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{config.OptLogDestination("syslog")})
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(3306),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptPipelineMode("full"),
			config.OptPipelineSampleRows(10),
			config.OptPipelineSampleFilesPerType(2),
			config.OptPipelineSampleForce(true),
			config.OptDownloadBaseURL("http://mirror/"),
			config.OptDownloadLookbackPeriods(5),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptDataRoot("/mnt/cnpj"),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Pipeline, newCfg.Pipeline)
		assert.Equal(t, original.Download, newCfg.Download)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.DataRoot, newCfg.DataRoot)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptHomeDir("/custom/home")})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())
		assert.Equal(t, "", newCfg.HomeDir)
	})
}
