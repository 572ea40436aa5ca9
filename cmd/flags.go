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
	"os"
	"os/signal"
	"syscall"

	app "github.com/gnames/cnpjdb/pkg"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// pipelineFlags are shared by commands that extract, load or run the
// whole pipeline.
type pipelineFlags struct {
	mode         string
	sampleRows   int
	filesPerType int
	force        bool
}

func addPipelineFlags(cmd *cobra.Command, pf *pipelineFlags) {
	cmd.Flags().StringVarP(&pf.mode, "mode", "m", config.ModeSample,
		"pipeline mode: sample or full")
	cmd.Flags().IntVarP(&pf.sampleRows, "sample-rows", "n", 50_000,
		"maximum rows per extracted file in sample mode")
	cmd.Flags().IntVarP(&pf.filesPerType, "sample-files-per-type", "k", 1,
		"archives of each kind used in sample mode")
	cmd.Flags().BoolVarP(&pf.force, "force", "f", false,
		"rewrite extracted files that exist already")
}

// options converts explicitly set flags to config options, so that
// defaults of flags never override values from config file or
// environment.
func (pf *pipelineFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("mode") {
		res = append(res, config.OptPipelineMode(pf.mode))
	}
	if flags.Changed("sample-rows") {
		res = append(res, config.OptPipelineSampleRows(pf.sampleRows))
	}
	if flags.Changed("sample-files-per-type") {
		res = append(res, config.OptPipelineSampleFilesPerType(pf.filesPerType))
	}
	if flags.Changed("force") {
		res = append(res, config.OptPipelineSampleForce(pf.force))
	}
	return res
}

// newContext returns a context that is cancelled on interrupt.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
}
