// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/markup"
)

var (
	renderExpr   string
	renderOutput string

	astOutput string
	astDump   bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document into HTML",
	Long: `Renders a document into HTML, reading stdin when no file is given.

Examples:
  markup render page.mu
  markup render -e 'p { "Hello" }'
  cat page.mu | markup render -o page.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, renderExpr, args)
		if err != nil {
			return err
		}

		output, err := markup.RenderHTML(cmd.Context(), src, cfg)
		if err != nil {
			return err
		}

		return writeOutput(cmd, renderOutput, []byte(output+"\n"))
	},
}

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Print a document's tree as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, "", args)
		if err != nil {
			return err
		}

		if astDump {
			nodes, err := markup.Parse(cmd.Context(), src, cfg)
			if err != nil {
				return err
			}

			return writeOutput(cmd, astOutput, []byte(spew.Sdump(nodes)))
		}

		output, err := markup.RenderYAML(cmd.Context(), src, cfg)
		if err != nil {
			return err
		}

		return writeOutput(cmd, astOutput, output)
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "List a document's tag names by depth",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(cmd, "", args)
		if err != nil {
			return err
		}

		levels, err := markup.Levels(cmd.Context(), src, cfg)
		if err != nil {
			return err
		}

		var buffer strings.Builder
		for depth, names := range levels {
			fmt.Fprintf(&buffer, "%d: %s\n", depth, strings.Join(names, " "))
		}

		return writeOutput(cmd, "", []byte(buffer.String()))
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderExpr, "expr", "e", "", "render the given source instead of a file")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default: stdout)")

	astCmd.Flags().StringVarP(&astOutput, "output", "o", "", "output file (default: stdout)")
	astCmd.Flags().BoolVar(&astDump, "dump", false, "dump the Go values instead of YAML")

	rootCmd.AddCommand(renderCmd, astCmd, treeCmd)
}
