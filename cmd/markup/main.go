// SPDX-License-Identifier: MIT

// Command markup renders markup documents into HTML.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/markup"
	"gitlab.com/fisherprime/markup/config"
)

var (
	cfgFile string
	verbose bool

	// Populated by the root command's pre-run.
	settings *config.File
	logger   logrus.FieldLogger
	cfg      *markup.Config
)

var rootCmd = &cobra.Command{
	Use:   "markup",
	Short: "Render markup documents",
	Long: `markup reads documents of nested tags & text and renders them into HTML.

	div(class: "row") {
		p { "Hello" }
		code-block(lang: "go", highlights: [1, 3..]) { "..." }
	}`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if settings, err = config.Load(cfgFile); err != nil {
			return
		}
		if verbose {
			settings.Debug = true
		}

		logger = settings.Logger()
		cfg = settings.Markup(logger)
		markup.SetLogger(logger)

		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "markup: %v\n", err)
		os.Exit(1)
	}
}

// readSource reads the command's source from the -e flag, a file argument or stdin.
func readSource(cmd *cobra.Command, expr string, args []string) ([]byte, error) {
	switch {
	case expr != "":
		return []byte(expr), nil
	case len(args) > 0 && args[0] != "-":
		return os.ReadFile(args[0])
	default:
		return io.ReadAll(cmd.InOrStdin())
	}
}

// writeOutput writes data to path, stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
