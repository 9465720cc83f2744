package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/philipparndt/robomap/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// FileVersion is written into every sidecar file
const FileVersion = "1.0"

// SidecarPath returns the file annotations of modelPath are saved to
func SidecarPath(modelPath string) string {
	return modelPath + ".robomap.json"
}

type sidecar struct {
	Version     string       `json:"version"`
	Model       string       `json:"model"`
	Annotations []Annotation `json:"annotations"`
}

// SaveFile writes the store to path. An empty store removes the file.
func SaveFile(path string, s *Store) error {
	items := s.List()
	if len(items) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		return nil
	}

	data, err := json.MarshalIndent(sidecar{Version: FileVersion, Model: s.Model(), Annotations: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal annotations: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// LoadFile fills the store from path. A missing file leaves the store empty.
func LoadFile(path string, s *Store) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.Replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file sidecar
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if file.Version != FileVersion {
		return fmt.Errorf("unsupported annotation file version %q in %s", file.Version, path)
	}

	s.Replace(file.Annotations)
	return nil
}

// ExportAnnotation is the exported view of an annotation
type ExportAnnotation struct {
	ID         string           `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	Position   geometry.Vector3 `json:"position" yaml:"position"`
	CreatedAt  string           `json:"createdAt" yaml:"createdAt"`
	Author     string           `json:"author" yaml:"author"`
	Tags       []string         `json:"tags" yaml:"tags"`
	Visibility string           `json:"visibility" yaml:"visibility"`
}

// ExportData is the document produced by Export
type ExportData struct {
	ModelPath   string             `json:"modelPath" yaml:"modelPath"`
	Timestamp   string             `json:"timestamp" yaml:"timestamp"`
	Annotations []ExportAnnotation `json:"annotations" yaml:"annotations"`
}

// NewExportData snapshots the store
func NewExportData(modelPath string, s *Store, at time.Time) ExportData {
	items := s.List()
	out := ExportData{
		ModelPath:   modelPath,
		Timestamp:   at.UTC().Format(time.RFC3339),
		Annotations: make([]ExportAnnotation, 0, len(items)),
	}
	for _, a := range items {
		out.Annotations = append(out.Annotations, ExportAnnotation{
			ID:         a.ID,
			Name:       a.Name,
			Position:   a.WorldPosition,
			CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
			Author:     a.Author,
			Tags:       append(make([]string, 0, len(a.Tags)), a.Tags...),
			Visibility: string(a.Visibility),
		})
	}
	return out
}

// ErrUnknownFormat is returned for export formats other than json and yaml
var ErrUnknownFormat = errors.New("unknown export format (expected json or yaml)")

// CheckFormat reports whether Export accepts format
func CheckFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "json", "yaml", "yml":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Export writes data as "json" or "yaml"
func Export(w io.Writer, format string, data ExportData) error {
	if err := CheckFormat(format); err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
}
