package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/robomap/pkg/annotation"
	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/snap"
	"github.com/spf13/cobra"
)

var (
	annotateName     string
	annotateAt       string
	annotateCategory string
	annotateTags     []string
	annotatePrivate  bool
	annotateSnap     bool
	annotateAuthor   string
	annotateFormat   string
	annotateOutput   string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Manage the annotations of a model",
	Long: `Annotations are stored in a sidecar file next to the model
(<model>.robomap.json). New annotations can be snapped to the mesh.`,
}

var annotateAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add an annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotateAdd,
}

var annotateListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotateList,
}

var annotateDeleteCmd = &cobra.Command{
	Use:   "delete [file] [id]",
	Short: "Delete an annotation",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnnotateDelete,
}

var annotateExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export annotations as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotateExport,
}

func init() {
	annotateAddCmd.Flags().StringVar(&annotateName, "name", "", "Annotation name (defaults to the snap suggestion)")
	annotateAddCmd.Flags().StringVar(&annotateAt, "at", "", "Clicked point as x,y,z")
	annotateAddCmd.Flags().StringVarP(&annotateCategory, "category", "c", "general", "Annotation category (general, navigation_waypoint, obstacle, path)")
	annotateAddCmd.Flags().StringSliceVar(&annotateTags, "tag", nil, "Tag to attach (repeatable)")
	annotateAddCmd.Flags().BoolVar(&annotatePrivate, "private", false, "Mark the annotation private")
	annotateAddCmd.Flags().BoolVar(&annotateSnap, "snap", true, "Snap the point to the mesh when confident")
	annotateAddCmd.Flags().StringVar(&annotateAuthor, "author", annotation.DefaultAuthor, "Author recorded on the annotation")

	annotateExportCmd.Flags().StringVarP(&annotateFormat, "format", "f", "json", "Export format (json, yaml)")
	annotateExportCmd.Flags().StringVarP(&annotateOutput, "output", "o", "", "Write to file instead of stdout")

	annotateCmd.AddCommand(annotateAddCmd, annotateListCmd, annotateDeleteCmd, annotateExportCmd)
	rootCmd.AddCommand(annotateCmd)
}

func openStore(modelPath string, opts ...annotation.Option) (*annotation.Store, error) {
	name := strings.TrimSuffix(filepath.Base(modelPath), filepath.Ext(modelPath))
	opts = append(opts, annotation.WithLogger(logger.WithModel(modelPath)))
	store := annotation.NewStore(name, opts...)
	if err := annotation.LoadFile(annotation.SidecarPath(modelPath), store); err != nil {
		return nil, err
	}
	return store, nil
}

func runAnnotateAdd(cmd *cobra.Command, args []string) error {
	modelPath := args[0]
	if annotateAt == "" {
		return errors.New("a point is required (--at x,y,z)")
	}
	click, err := geometry.ParseVector3(annotateAt)
	if err != nil {
		return err
	}
	category, err := snap.ParseCategory(annotateCategory)
	if err != nil {
		return err
	}

	var result *snap.Result
	if annotateSnap {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		res, err := loadModel(cmd.Context(), modelPath)
		if err != nil {
			return err
		}
		result, err = engine.FindSnapPoint(cmd.Context(), click, res.Model, category)
		if err != nil {
			return err
		}
	}

	if annotateName == "" && result == nil {
		return errors.New("a name is required when snapping is disabled (--name)")
	}

	store, err := openStore(modelPath, annotation.WithAuthor(annotateAuthor))
	if err != nil {
		return err
	}

	data := annotation.FromSnap(annotateName, category, click, result)
	data.Tags = annotateTags
	data.Visibility = annotation.VisibilityPublic
	if annotatePrivate {
		data.Visibility = annotation.VisibilityPrivate
	}

	created, err := store.Create(cmd.Context(), data)
	if err != nil {
		return err
	}
	if err := annotation.SaveFile(annotation.SidecarPath(modelPath), store); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %s %q at %s\n", created.ID, created.Name, created.WorldPosition.Format(4))
	if result != nil {
		applied := "kept click"
		if result.ShouldApply() {
			applied = "snapped to " + string(result.Kind)
		}
		fmt.Fprintf(out, "  %s, confidence %s\n", applied, result.Suggestion.Metadata.Confidence)
	}
	return nil
}

func runAnnotateList(cmd *cobra.Command, args []string) error {
	store, err := openStore(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	items := store.List()
	if len(items) == 0 {
		fmt.Fprintln(out, "No annotations")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-20s  %-19s  %s\n", "ID", "NAME", "TYPE", "POSITION")
	for _, a := range items {
		fmt.Fprintf(out, "%-36s  %-20s  %-19s  %s\n", a.ID, a.Name, a.Type, a.WorldPosition.Format(2))
	}
	return nil
}

func runAnnotateDelete(cmd *cobra.Command, args []string) error {
	modelPath, id := args[0], args[1]

	store, err := openStore(modelPath)
	if err != nil {
		return err
	}
	if err := store.Delete(cmd.Context(), id); err != nil {
		return err
	}
	if err := annotation.SaveFile(annotation.SidecarPath(modelPath), store); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}

func runAnnotateExport(cmd *cobra.Command, args []string) error {
	modelPath := args[0]
	if err := annotation.CheckFormat(annotateFormat); err != nil {
		return err
	}

	store, err := openStore(modelPath)
	if err != nil {
		return err
	}
	data := annotation.NewExportData(modelPath, store, time.Now())

	if annotateOutput == "" {
		return annotation.Export(cmd.OutOrStdout(), annotateFormat, data)
	}

	file, err := os.Create(annotateOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := annotation.Export(file, annotateFormat, data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
