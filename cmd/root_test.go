package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/cnpjdb/internal/iofs"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "cnpjdb", cmd.Use,
		"Command name should be cnpjdb")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	tests := []struct {
		msg  string
		flag string
	}{
		{msg: "long flag", flag: "--version"},
		{msg: "short flag", flag: "-V"},
	}

	for _, v := range tests {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{v.flag})

		err := cmd.Execute()
		require.NoError(t, err, v.msg)

		output := buf.String()
		assert.Contains(t, output, "v1.2.3", v.msg)
		assert.Contains(t, output, "abc123", v.msg)
		assert.NotContains(t, output, "cnpjdb version:", v.msg)
	}
}

// TestGetRootCmd_Subcommands verifies every stage has a command.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()
	for _, v := range append(stageNames(), "run") {
		sub, _, err := cmd.Find([]string{v})
		require.NoError(t, err, v)
		assert.Equal(t, v, sub.Name())
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "cnpjdb")
	assert.Contains(t, helpText, "PostgreSQL")
	assert.Contains(t, helpText, "CNPJDB_")
}

// TestGetRootCmd_Settings verifies bootstrap and error silencing.
func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

func TestInitConfig(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	t.Run("defaults from config file", func(t *testing.T) {
		res, err := initConfig(home)
		require.NoError(t, err)

		cfg := config.New()
		cfg.Update(res.ToOptions())
		assert.Equal(t, config.New().Pipeline, cfg.Pipeline)
		assert.Equal(t, config.New().Database, cfg.Database)
	})

	t.Run("legacy environment names", func(t *testing.T) {
		t.Setenv("PIPELINE_MODE", "full")
		t.Setenv("SAMPLE_ROWS", "42")
		t.Setenv("SAMPLE_FILES_PER_TYPE", "3")
		t.Setenv("SAMPLE_FORCE", "true")
		t.Setenv("DATA_ROOT", "/mnt/cnpj")
		t.Setenv("DB_HOST", "db.local")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("DB_NAME", "receita")
		t.Setenv("DB_USER", "etl")
		t.Setenv("DB_PASSWORD", "secret")

		res, err := initConfig(home)
		require.NoError(t, err)

		cfg := config.New()
		cfg.Update(res.ToOptions())
		assert.Equal(t, config.ModeFull, cfg.Pipeline.Mode)
		assert.Equal(t, 42, cfg.Pipeline.SampleRows)
		assert.Equal(t, 3, cfg.Pipeline.SampleFilesPerType)
		assert.True(t, cfg.Pipeline.SampleForce)
		assert.Equal(t, "/mnt/cnpj", cfg.DataRoot)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, "receita", cfg.Database.Database)
		assert.Equal(t, "etl", cfg.Database.User)
		assert.Equal(t, "secret", cfg.Database.Password)
	})

	t.Run("prefixed names win", func(t *testing.T) {
		t.Setenv("PIPELINE_MODE", "full")
		t.Setenv("CNPJDB_PIPELINE_MODE", "sample")
		t.Setenv("CNPJDB_PIPELINE_SAMPLE_ROWS", "7")

		res, err := initConfig(home)
		require.NoError(t, err)
		assert.Equal(t, config.ModeSample, res.Pipeline.Mode)
		assert.Equal(t, 7, res.Pipeline.SampleRows)
	})

	t.Run("invalid values keep defaults", func(t *testing.T) {
		t.Setenv("CNPJDB_PIPELINE_MODE", "head")
		t.Setenv("CNPJDB_PIPELINE_SAMPLE_ROWS", "-5")

		res, err := initConfig(home)
		require.NoError(t, err)

		cfg := config.New()
		cfg.Update(res.ToOptions())
		assert.Equal(t, config.ModeSample, cfg.Pipeline.Mode)
		assert.Equal(t, 50_000, cfg.Pipeline.SampleRows)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := initConfig(t.TempDir())
		assert.Error(t, err)
	})
}

// clearEnv unsets every bound variable for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, v := range names {
			if val, ok := os.LookupEnv(v); ok {
				t.Setenv(v, val)
				os.Unsetenv(v)
			}
		}
	}
}

func TestConfigFileLocation(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))
	assert.FileExists(t,
		filepath.Join(home, ".config", "cnpjdb", "config.yaml"))
}
