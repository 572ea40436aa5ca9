/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/cnpjdb/internal/iofs"
	"github.com/gnames/cnpjdb/internal/iologger"
	app "github.com/gnames/cnpjdb/pkg"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "cnpjdb",
		Short:   "Builds a PostgreSQL copy of the Brazilian CNPJ open data",
		Long: `cnpjdb downloads the CNPJ open data set, extracts it, and bulk-loads
companies, establishments and partners into PostgreSQL.

Stages:
  download  fetch archives of the newest monthly release
  create    create tables (drops existing ones after confirmation)
  extract   unpack archives, in sample mode as a referentially
            consistent subset
  load      COPY extracted files into their tables, exactly once
  check     sanity checks and quality gate
  run       all of the above in order

Every stage can be repeated: work that was done already is skipped.

Configuration precedence (highest to lowest):
  1. command line flags
  2. environment variables (CNPJDB_*, e.g. CNPJDB_PIPELINE_MODE)
  3. .env file in the working directory
  4. ~/.config/cnpjdb/config.yaml
  5. built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "cnpjdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for cnpjdb")

	rootCmd.AddCommand(
		getDownloadCmd(),
		getCreateCmd(),
		getExtractCmd(),
		getLoadCmd(),
		getCheckCmd(),
		getRunCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error

	// .env is optional
	_ = godotenv.Load()

	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"mode", cfg.Pipeline.Mode,
		"data_root", cfg.DataRootDir(),
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Bootstrap records written so far are kept.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envBindings lists environment variables for every persistent setting.
// The first name wins when several are set. Names without the CNPJDB_
// prefix are the ones used by the older shell tooling.
var envBindings = map[string][]string{
	// Database configuration
	"database.host":     {"CNPJDB_DATABASE_HOST", "DB_HOST"},
	"database.port":     {"CNPJDB_DATABASE_PORT", "DB_PORT"},
	"database.user":     {"CNPJDB_DATABASE_USER", "DB_USER"},
	"database.password": {"CNPJDB_DATABASE_PASSWORD", "DB_PASSWORD"},
	"database.database": {"CNPJDB_DATABASE_DATABASE", "DB_NAME"},
	"database.ssl_mode": {"CNPJDB_DATABASE_SSL_MODE"},

	// Pipeline configuration
	"pipeline.mode":        {"CNPJDB_PIPELINE_MODE", "PIPELINE_MODE"},
	"pipeline.sample_rows": {"CNPJDB_PIPELINE_SAMPLE_ROWS", "SAMPLE_ROWS"},
	"pipeline.sample_files_per_type": {
		"CNPJDB_PIPELINE_SAMPLE_FILES_PER_TYPE", "SAMPLE_FILES_PER_TYPE",
	},
	"pipeline.sample_force": {"CNPJDB_PIPELINE_SAMPLE_FORCE", "SAMPLE_FORCE"},

	// Download configuration
	"download.base_url":         {"CNPJDB_DOWNLOAD_BASE_URL"},
	"download.lookback_periods": {"CNPJDB_DOWNLOAD_LOOKBACK_PERIODS"},

	// Log configuration
	"log.level":       {"CNPJDB_LOG_LEVEL"},
	"log.format":      {"CNPJDB_LOG_FORMAT"},
	"log.destination": {"CNPJDB_LOG_DESTINATION"},

	// General configuration
	"data_root": {"CNPJDB_DATA_ROOT", "DATA_ROOT"},
}

func initEnvVars(v *viper.Viper) {
	// We bind variables manually so it is clear which of them are allowed.
	// They match the fields included in config.ToOptions().
	v.SetEnvPrefix("CNPJDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for k, names := range envBindings {
		args := append([]string{k}, names...)
		_ = v.BindEnv(args...)
	}

	v.AutomaticEnv()
}
