package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/snap"
	"github.com/spf13/cobra"
)

var (
	snapAt       string
	snapCategory string
	snapPoints   string
	snapJSON     bool
)

var snapCmd = &cobra.Command{
	Use:   "snap [file]",
	Short: "Snap a point to the nearest meaningful feature",
	Long: `Find the best snap target near a point: a corner, an edge midpoint or an
obstacle, depending on the annotation category. Points without a nearby
feature are reported as free space with low confidence.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnap,
}

func init() {
	snapCmd.Flags().StringVar(&snapAt, "at", "", "Point to snap as x,y,z")
	snapCmd.Flags().StringVarP(&snapCategory, "category", "c", "general", "Annotation category (general, navigation_waypoint, obstacle, path)")
	snapCmd.Flags().StringVar(&snapPoints, "points", "", "File with one x,y,z point per line")
	snapCmd.Flags().BoolVar(&snapJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(snapCmd)
}

func runSnap(cmd *cobra.Command, args []string) error {
	category, err := snap.ParseCategory(snapCategory)
	if err != nil {
		return err
	}

	clicks, err := snapInputs(snapAt, snapPoints)
	if err != nil {
		return err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	res, err := loadModel(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	results, err := engine.FindSnapPoints(cmd.Context(), clicks, res.Model, category)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if snapJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	}

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printSnapResult(out, clicks[i], result)
	}
	return nil
}

func snapInputs(at, pointsFile string) ([]geometry.Vector3, error) {
	switch {
	case at != "" && pointsFile != "":
		return nil, errors.New("use either --at or --points, not both")
	case pointsFile != "":
		points, err := readPoints(pointsFile)
		if err != nil {
			return nil, err
		}
		if len(points) == 0 {
			return nil, fmt.Errorf("no points in %s", pointsFile)
		}
		return points, nil
	case at != "":
		p, err := geometry.ParseVector3(at)
		if err != nil {
			return nil, err
		}
		return []geometry.Vector3{p}, nil
	default:
		return nil, errors.New("a point is required (--at x,y,z or --points file)")
	}
}

func printSnapResult(out io.Writer, click geometry.Vector3, r *snap.Result) {
	fmt.Fprintf(out, "Click:      %s\n", click.Format(4))
	if r == nil {
		fmt.Fprintln(out, "No mesh available")
		return
	}
	fmt.Fprintf(out, "Snapped:    %s\n", r.Position.Format(4))
	fmt.Fprintf(out, "Type:       %s\n", r.Kind)
	fmt.Fprintf(out, "Normal:     %s\n", r.Normal.Format(4))
	fmt.Fprintf(out, "Confidence: %.4f (%s)\n", r.Confidence, r.Suggestion.Metadata.Confidence)
	if r.Kind != snap.KindFreeSpace {
		fmt.Fprintf(out, "  Distance score: %.4f\n", r.DistanceScore)
		fmt.Fprintf(out, "  Feature score:  %.4f\n", r.FeatureScore)
		fmt.Fprintf(out, "  Candidates:     %d\n", r.Candidates)
	}
	fmt.Fprintf(out, "Suggestion: %s\n", r.Suggestion.Primary)
	for _, alt := range r.Suggestion.Alternatives {
		fmt.Fprintf(out, "  - %s\n", alt)
	}
	if r.ShouldApply() {
		fmt.Fprintln(out, "Apply:      yes")
	} else {
		fmt.Fprintln(out, "Apply:      no")
	}
}
