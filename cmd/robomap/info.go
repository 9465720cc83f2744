package main

import (
	"fmt"

	"github.com/philipparndt/robomap/pkg/analysis"
	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	infoEdges int
	infoNear  string
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show parts, dimensions, triangle count, surface area and edge statistics of a model.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().IntVarP(&infoEdges, "edges", "n", 0, "Also list the N longest and shortest edges")
	infoCmd.Flags().StringVar(&infoNear, "near", "", "Report the vertex nearest to x,y,z")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	res, err := loadModel(cmd.Context(), filename)
	if err != nil {
		return err
	}
	model := res.Model
	result := analysis.AnalyzeModel(model)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Parts: %d\n", len(result.Parts))
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if !result.BoundingBox.IsEmpty() {
		fmt.Fprintln(out, "Bounding Box:")
		fmt.Fprintf(out, "  Min: %s\n", result.BoundingBox.Min.Format(6))
		fmt.Fprintf(out, "  Max: %s\n", result.BoundingBox.Max.Format(6))
		fmt.Fprintf(out, "  Center: %s\n\n", result.BoundingBox.Center().Format(6))

		fmt.Fprintln(out, "Dimensions:")
		fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
		fmt.Fprintf(out, "  Height (Y): %.6f units\n", result.Dimensions.Y)
		fmt.Fprintf(out, "  Depth (Z): %.6f units\n", result.Dimensions.Z)
		fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())
	}

	if len(result.Parts) > 1 {
		fmt.Fprintln(out, "Parts:")
		for _, p := range result.Parts {
			fmt.Fprintf(out, "  %-20s %6d triangles  height %.4f\n", p.Name, p.Triangles, p.BoundingBox.Height())
		}
		fmt.Fprintln(out)
	}

	if result.EdgeCount > 0 {
		fmt.Fprintln(out, "Edge Lengths:")
		fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
		fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
		fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)
	}

	if infoEdges > 0 {
		fmt.Fprintf(out, "\nLongest %d edges:\n", infoEdges)
		for i, e := range analysis.FindLongestEdges(result, infoEdges) {
			fmt.Fprintf(out, "  %3d. %.6f  %s -> %s  (%s)\n", i+1, e.Length, e.Start.Format(4), e.End.Format(4), e.Part)
		}
		fmt.Fprintf(out, "\nShortest %d edges:\n", infoEdges)
		for i, e := range analysis.FindShortestEdges(result, infoEdges) {
			fmt.Fprintf(out, "  %3d. %.6f  %s -> %s  (%s)\n", i+1, e.Length, e.Start.Format(4), e.End.Format(4), e.Part)
		}
	}

	if infoNear != "" {
		p, err := geometry.ParseVector3(infoNear)
		if err != nil {
			return err
		}
		if v, d, ok := analysis.FindNearestVertex(model, p); ok {
			fmt.Fprintf(out, "\nNearest vertex to %s: %s (distance %.6f)\n", p.Format(4), v.Format(4), d)
		}
	}

	return nil
}
