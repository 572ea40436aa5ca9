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
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	var pf pipelineFlags

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Bulk-load extracted files into PostgreSQL",
		Long: `Load extracted files of the current mode with COPY.

Each file is loaded in its own transaction and renamed with the
".loaded" suffix afterwards. Loaded files are never loaded again, even
if the previous run stopped right after a commit. Progress is kept in
.load-manifest.yaml next to the files.

Examples:
  cnpjdb load
  cnpjdb load --mode full`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pf.options(cmd))
			ctx, stop := newContext()
			defer stop()

			err := runLoad(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	loadCmd.Flags().StringVarP(&pf.mode, "mode", "m", config.ModeSample,
		"pipeline mode: sample or full")
	return loadCmd
}
