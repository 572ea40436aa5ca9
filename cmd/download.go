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

// getDownloadCmd returns the download command.
func getDownloadCmd() *cobra.Command {
	var pf pipelineFlags

	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download archives of the newest CNPJ release",
		Long: `Download company, establishment and partner archives.

This command:
  1. Finds monthly release folders (YYYY-MM) on the publisher's site
  2. Picks the newest of the last few releases that has archives
  3. Downloads archives missing in <data_root>/raw

In sample mode only the first --sample-files-per-type archives of each
kind are downloaded. Failed downloads are retried, then skipped.

Examples:
  cnpjdb download
  cnpjdb download --mode full
  cnpjdb download -k 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pf.options(cmd))
			ctx, stop := newContext()
			defer stop()

			err := runDownload(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	downloadCmd.Flags().StringVarP(&pf.mode, "mode", "m", config.ModeSample,
		"pipeline mode: sample or full")
	downloadCmd.Flags().IntVarP(&pf.filesPerType, "sample-files-per-type", "k", 1,
		"archives of each kind downloaded in sample mode")

	return downloadCmd
}
