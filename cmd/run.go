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
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var (
		pf     pipelineFlags
		only   string
		dryRun bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the whole pipeline",
		Long: `Run download, create, extract, load and check in this order.

The create stage only adds missing tables, it never drops data. A
failing stage stops the run.

Examples:
  cnpjdb run
  cnpjdb run --mode full
  cnpjdb run --only extract -n 1000
  cnpjdb run --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := selectStages(only)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			cfg.Update(pf.options(cmd))

			if dryRun {
				printPlan(stages)
				return nil
			}

			ctx, stop := newContext()
			defer stop()

			err = runStages(ctx, stages)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addPipelineFlags(runCmd, &pf)
	runCmd.Flags().StringVar(&only, "only", "",
		"run one stage: "+strings.Join(stageNames(), ", "))
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"show what would run without doing it")

	return runCmd
}

func selectStages(only string) ([]string, error) {
	only = strings.ToLower(strings.TrimSpace(only))
	if only == "" {
		return stageNames(), nil
	}
	if !slices.Contains(stageNames(), only) {
		return nil, fmt.Errorf("unknown stage %q, use one of: %s",
			only, strings.Join(stageNames(), ", "))
	}
	return []string{only}, nil
}

func printPlan(stages []string) {
	gn.Info("Dry run, nothing will be changed")
	gn.Info("Stages: <em>%s</em>", strings.Join(stages, " -> "))
	gn.Info("Mode: <em>%s</em>", cfg.Pipeline.Mode)
	if cfg.IsSample() {
		gn.Info("Rows per file: %d, archives per kind: %d, rewrite: %t",
			cfg.Pipeline.SampleRows, cfg.Pipeline.SampleFilesPerType,
			cfg.Pipeline.SampleForce)
	}
	gn.Info("Raw archives: <em>%s</em>", cfg.RawDir())
	gn.Info("Extracted files: <em>%s</em>", cfg.OutputDir())
	gn.Info("Database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
}

func runStages(ctx context.Context, stages []string) error {
	startTime := time.Now()
	for _, v := range stages {
		stageStart := time.Now()
		gn.Info("Stage <em>%s</em>", v)

		if err := runStage(ctx, v); err != nil {
			slog.Error("Stage failed", "stage", v, "error", err)
			return err
		}

		dur := gnfmt.TimeString(time.Since(stageStart).Seconds())
		slog.Info("Stage complete", "stage", v, "duration", dur)
	}

	dur := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Pipeline complete", "stages", stages, "duration", dur)
	gn.Info("Pipeline complete. Elapsed time: <em>%s</em>", dur)
	return nil
}

func runStage(ctx context.Context, stage string) error {
	switch stage {
	case stageDownload:
		return runDownload(ctx)
	case stageCreate:
		return runCreate(ctx, false, false)
	case stageExtract:
		return runExtract(ctx)
	case stageLoad:
		return runLoad(ctx)
	case stageCheck:
		return runCheck(ctx)
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
}
