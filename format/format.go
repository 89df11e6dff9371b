// Package format provides drawing file format detection for the
// vellum library.
package format

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
)

// Format represents a supported drawing file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a JSON drawing document.
	JSON
	// YAML indicates a YAML drawing document.
	YAML
	// SVG indicates an SVG image.
	SVG
	// DXF indicates a DXF CAD exchange file.
	DXF
	// PDF indicates a PDF document.
	PDF
	// PNG indicates a PNG image.
	PNG
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case SVG:
		return "svg"
	case DXF:
		return "dxf"
	case PDF:
		return "pdf"
	case PNG:
		return "png"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	case SVG:
		return ".svg"
	case DXF:
		return ".dxf"
	case PDF:
		return ".pdf"
	case PNG:
		return ".png"
	default:
		return ""
	}
}

// Readable reports whether drawings can be loaded from the format.
// PDF and PNG are write-only render targets.
func (f Format) Readable() bool {
	switch f {
	case JSON, YAML, SVG, DXF:
		return true
	default:
		return false
	}
}

// Parse maps a format name, as produced by String, back to a Format.
func Parse(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON
	case "yaml", "yml":
		return YAML
	case "svg":
		return SVG
	case "dxf":
		return DXF
	case "pdf":
		return PDF
	case "png":
		return PNG
	default:
		return Unknown
	}
}

// Detect determines the file format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".svg":
		return SVG
	case ".dxf":
		return DXF
	case ".pdf":
		return PDF
	case ".png":
		return PNG
	default:
		return Unknown
	}
}

// DetectFromMagic inspects content to determine the format. It is
// more reliable than extension-based detection for text formats and
// returns Unknown when the content matches nothing recognizable.
func DetectFromMagic(data []byte) Format {
	if len(data) >= 4 && data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}
	if len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}) {
		return PNG
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return Unknown
	case trimmed[0] == '{':
		return JSON
	case trimmed[0] == '<':
		head := strings.ToLower(string(trimmed[:min(len(trimmed), 512)]))
		if strings.HasPrefix(head, "<?xml") || strings.HasPrefix(head, "<svg") || strings.Contains(head, "<svg") {
			return SVG
		}
		return Unknown
	case looksLikeDXF(trimmed):
		return DXF
	case looksLikeYAML(trimmed):
		return YAML
	default:
		return Unknown
	}
}

// looksLikeDXF checks for the tagged pair structure: a numeric group
// code line followed by a value line.
func looksLikeDXF(data []byte) bool {
	lines := strings.SplitN(string(data[:min(len(data), 256)]), "\n", 3)
	if len(lines) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	return err == nil
}

// looksLikeYAML checks for a top-level "key:" line.
func looksLikeYAML(data []byte) bool {
	head := string(data[:min(len(data), 512)])
	for _, line := range strings.Split(head, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, _, found := strings.Cut(line, ":")
		return found && key != "" && !strings.ContainsAny(key, " \t")
	}
	return false
}
