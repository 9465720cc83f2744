package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	featuresAt   string
	featuresJSON bool
)

var featuresCmd = &cobra.Command{
	Use:   "features [file]",
	Short: "List the geometric features around a point",
	Long:  "Show the edges, corners, planes and obstacles the snap engine finds within its search radius of a point.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeatures,
}

func init() {
	featuresCmd.Flags().StringVar(&featuresAt, "at", "", "Point to inspect as x,y,z")
	featuresCmd.Flags().BoolVar(&featuresJSON, "json", false, "Print features as JSON")
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	if featuresAt == "" {
		return errors.New("a point is required (--at x,y,z)")
	}
	click, err := geometry.ParseVector3(featuresAt)
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

	features, err := engine.ExtractFeatures(cmd.Context(), res.Model, click)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if featuresJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(features)
	}

	fmt.Fprintf(out, "Features within %.4f of %s\n", engine.Config().Threshold, click.Format(4))
	fmt.Fprintln(out, "================================")

	fmt.Fprintf(out, "\nCorners (%d):\n", len(features.Corners))
	for i, c := range features.Corners {
		fmt.Fprintf(out, "  %3d. %s  sharpness %d  distance %.4f\n", i+1, c.Position.Format(4), c.Sharpness, c.Distance)
	}

	fmt.Fprintf(out, "\nEdges (%d):\n", len(features.Edges))
	for i, e := range features.Edges {
		fmt.Fprintf(out, "  %3d. %s  length %.4f  distance %.4f\n", i+1, e.Position.Format(4), e.Length, e.Distance)
	}

	fmt.Fprintf(out, "\nObstacles (%d):\n", len(features.Obstacles))
	for i, o := range features.Obstacles {
		fmt.Fprintf(out, "  %3d. %s  size %s  distance %.4f\n", i+1, o.Position.Format(4), o.Size.Format(4), o.Distance)
	}

	if len(features.Planes) > 0 {
		fmt.Fprintf(out, "\nPlanes (%d):\n", len(features.Planes))
		for i, p := range features.Planes {
			fmt.Fprintf(out, "  %3d. %s  normal %s  area %.4f\n", i+1, p.Position.Format(4), p.Normal.Format(4), p.Area)
		}
	}

	fmt.Fprintf(out, "\nTotal: %d\n", features.Count())
	return nil
}
