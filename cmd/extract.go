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
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getExtractCmd returns the extract command.
func getExtractCmd() *cobra.Command {
	var pf pipelineFlags

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract downloaded archives",
		Long: `Extract members of archives in <data_root>/raw.

Full mode copies every member unchanged to <data_root>/processed.

Sample mode writes to <data_root>/processed_sample. Each file gets at
most --sample-rows rows. Companies are extracted first, and only
establishments and partners of extracted companies are kept, so the
sample loads without orphans.

Files that exist already are not extracted again, use --force to
rewrite them.

Examples:
  cnpjdb extract
  cnpjdb extract -n 1000 -k 2
  cnpjdb extract --mode full`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(pf.options(cmd))
			ctx, stop := newContext()
			defer stop()

			err := runExtract(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addPipelineFlags(extractCmd, &pf)
	return extractCmd
}
