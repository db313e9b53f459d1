// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/markup"
)

// watchDebounce is the quiet period after the last event of a save before re-rendering.
const watchDebounce = 100 * time.Millisecond

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch file",
	Short: "Re-render a document into HTML whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		// The directory is watched as editors replace files on save.
		if err = watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}
		logger.Infof("watching %s", path)

		renderFile(cmd, path)

		return watchLoop(cmd.Context(), watcher, path, func() { renderFile(cmd, path) })
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(watchCmd)
}

// watchLoop calls onChange once a burst of write & create events on path settles, until ctx is
// done.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, onChange func()) error {
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timer.C:
			onChange()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			// Restart the wait so the last event of the burst triggers the render.
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watcher error: %v", err)
		}
	}
}

// renderFile renders path, logging failures so the watch keeps running.
func renderFile(cmd *cobra.Command, path string) {
	src, err := readSource(cmd, "", []string{path})
	if err != nil {
		logger.Errorf("read %s: %v", path, err)
		return
	}

	output, err := markup.RenderHTML(cmd.Context(), src, cfg)
	if err != nil {
		logger.Errorf("render %s: %v", path, err)
		return
	}

	if err = writeOutput(cmd, watchOutput, []byte(output+"\n")); err != nil {
		logger.Errorf("write %s: %v", watchOutput, err)
		return
	}
	logger.Infof("rendered %s", path)
}
