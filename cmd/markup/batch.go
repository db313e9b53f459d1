// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/markup"
	"gitlab.com/fisherprime/markup/transform"
)

var (
	batchOutDir   string
	batchPoolSize int
)

var batchCmd = &cobra.Command{
	Use:   "batch files...",
	Short: "Render many documents into HTML in parallel",
	Long: `Renders every file into <out-dir>/<name>.html; a failed document produces no output.

Examples:
  markup batch --out-dir site docs/*.mu`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		docs := make([][]byte, len(args))
		for index := range args {
			if docs[index], err = os.ReadFile(args[index]); err != nil {
				return
			}
		}

		if err = os.MkdirAll(batchOutDir, 0o755); err != nil {
			return
		}

		poolSize := batchPoolSize
		if poolSize < 1 {
			poolSize = settings.PoolSize
		}

		outputs, renderErr := markup.NewBatch(cfg, poolSize).RenderAll(cmd.Context(), docs)

		indices := transform.FailedDocuments(renderErr)
		if renderErr != nil && len(indices) < 1 {
			return renderErr
		}

		failed := make(map[int]bool, len(indices))
		for _, index := range indices {
			failed[index] = true
		}

		errs := []error{renderErr}
		for index := range args {
			if failed[index] {
				continue
			}

			path := filepath.Join(batchOutDir, outputName(args[index]))
			if writeErr := os.WriteFile(path, []byte(outputs[index]+"\n"), 0o644); writeErr != nil {
				errs = append(errs, writeErr)
				continue
			}
			logger.Debugf("rendered %s into %s", args[index], path)
		}

		return errors.Join(errs...)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", ".", "output directory")
	batchCmd.Flags().IntVar(&batchPoolSize, "pool", 0, "number of workers (default: config pool_size or GOMAXPROCS)")

	rootCmd.AddCommand(batchCmd)
}

// outputName replaces the file's extension with .html.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}
