package vellum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vellumcad/vellum/dxf"
	"github.com/vellumcad/vellum/format"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/pdf"
	"github.com/vellumcad/vellum/raster"
	"github.com/vellumcad/vellum/svg"
)

// Load reads a drawing from a file. The format is detected from the
// extension, falling back to content sniffing, so "cart.drawing"
// containing JSON still loads.
func Load(filename string) (*model.Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading drawing: %w", err)
	}
	f := format.Detect(filename)
	if !f.Readable() {
		f = format.DetectFromMagic(data)
	}
	return decode(data, f)
}

// LoadReader reads a drawing from r in the given format. Pass
// format.Unknown to detect the format from the content.
func LoadReader(r io.Reader, f format.Format) (*model.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading drawing: %w", err)
	}
	if f == format.Unknown {
		f = format.DetectFromMagic(data)
	}
	return decode(data, f)
}

func decode(data []byte, f format.Format) (*model.Model, error) {
	switch f {
	case format.JSON:
		var m model.Model
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding json drawing: %w", err)
		}
		return &m, nil
	case format.YAML:
		var m model.Model
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding yaml drawing: %w", err)
		}
		return &m, nil
	case format.SVG:
		return svg.Read(bytes.NewReader(data))
	case format.DXF:
		return dxf.Read(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported drawing format %s", f)
	}
}

// Save writes a drawing to filename in the format named by the
// extension. JSON, YAML, SVG, DXF, PDF, and PNG extensions are
// recognized; exporters run with their default configuration.
func Save(m *model.Model, filename string) error {
	switch f := format.Detect(filename); f {
	case format.JSON:
		return saveJSON(m, filename)
	case format.YAML:
		return saveYAML(m, filename)
	case format.SVG:
		return svg.NewExporter().ExportToFile(m, filename)
	case format.DXF:
		return dxf.NewExporter().ExportToFile(m, filename)
	case format.PDF:
		return pdf.NewExporter().ExportToFile(m, filename)
	case format.PNG:
		return raster.NewRenderer().ExportToFile(m, filename)
	default:
		return fmt.Errorf("unsupported drawing format for %q", filename)
	}
}

func saveJSON(m *model.Model, filename string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json drawing: %w", err)
	}
	return writeDrawingFile(filename, append(data, '\n'))
}

func saveYAML(m *model.Model, filename string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding yaml drawing: %w", err)
	}
	return writeDrawingFile(filename, data)
}

func writeDrawingFile(filename string, data []byte) error {
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing drawing: %w", err)
	}
	return nil
}
