package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/snap"
	"github.com/philipparndt/robomap/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	watchAt       string
	watchCategory string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-run a snap whenever the model changes",
	Long: `Snap a point, then watch the model file (and, for OpenSCAD models, every
included file) and snap again after each change. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchAt, "at", "", "Point to snap as x,y,z")
	watchCmd.Flags().StringVarP(&watchCategory, "category", "c", "general", "Annotation category (general, navigation_waypoint, obstacle, path)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before reloading")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	modelPath := args[0]
	if watchAt == "" {
		return errors.New("a point is required (--at x,y,z)")
	}
	click, err := geometry.ParseVector3(watchAt)
	if err != nil {
		return err
	}
	category, err := snap.ParseCategory(watchCategory)
	if err != nil {
		return err
	}
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	watchFiles, err := snapOnce(ctx, out, engine, modelPath, click, category)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	var onChange func(string)
	onChange = func(changed string) {
		fmt.Fprintf(out, "\n%s changed\n", changed)
		files, err := snapOnce(ctx, out, engine, modelPath, click, category)
		if err != nil {
			logger.ErrorContext(ctx, "reload failed", "path", modelPath, "error", err)
			return
		}
		if err := fw.SetFiles(files, onChange); err != nil {
			logger.WarnContext(ctx, "failed to update watch list", "path", modelPath, "error", err)
		}
	}
	if err := fw.Watch(watchFiles, onChange); err != nil {
		return err
	}

	logger.InfoContext(ctx, "watching for changes", "files", len(watchFiles))
	if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func snapOnce(ctx context.Context, out io.Writer, engine *snap.Engine, modelPath string, click geometry.Vector3, category snap.Category) ([]string, error) {
	res, err := loadModel(ctx, modelPath)
	if err != nil {
		return nil, err
	}
	result, err := engine.FindSnapPoint(ctx, click, res.Model, category)
	if err != nil {
		return nil, err
	}
	printSnapResult(out, click, result)
	return res.WatchFiles, nil
}
