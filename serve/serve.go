// Package serve exposes drawings over HTTP for preview. The server is
// read-only: it lists drawing documents found on disk and renders them
// to the format named by the request extension.
package serve

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"github.com/vellumcad/vellum"
	"github.com/vellumcad/vellum/dxf"
	"github.com/vellumcad/vellum/format"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/pdf"
	"github.com/vellumcad/vellum/raster"
	"github.com/vellumcad/vellum/svg"
)

var (
	registry = prometheus.NewRegistry()

	renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vellum_renders_total",
			Help: "Total number of drawing renders served, by output format",
		},
		[]string{"format"},
	)
	renderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "vellum_render_duration_seconds",
			Help: "Time spent loading and rendering a drawing",
		},
		[]string{"format"},
	)
)

func init() {
	registry.MustRegister(renders, renderDuration)
}

// Server renders drawings from a directory, or a single drawing file,
// over HTTP.
type Server struct {
	path   string
	logger *slog.Logger
}

// NewServer creates a server for path, which may be a directory of
// drawing files or one drawing file. A nil logger falls back to
// slog.Default.
func NewServer(path string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{path: path, logger: logger}
}

// Handler returns the route tree:
//
//	GET /drawings              list of available drawings
//	GET /drawings/{name.ext}   the named drawing rendered as ext
//	GET /healthz               liveness probe
//	GET /metrics               Prometheus metrics
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/drawings", s.handleList)
	r.Get("/drawings/{name}", s.handleDrawing)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type listing struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Format string `json:"format"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	sources, err := s.sources()
	if err != nil {
		http.Error(w, "listing drawings failed", http.StatusInternalServerError)
		s.logger.Error("listing drawings failed", "path", s.path, "error", err)
		return
	}

	items := make([]listing, 0, len(sources))
	for _, src := range sources {
		base := filepath.Base(src)
		items = append(items, listing{
			Name:   strings.TrimSuffix(base, filepath.Ext(base)),
			Source: base,
			Format: format.Detect(base).String(),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(items); err != nil {
		s.logger.Error("list response encode failed", "error", err)
	}
}

func (s *Server) handleDrawing(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	target := format.Detect(name)
	if target == format.Unknown {
		http.Error(w, "unsupported output format", http.StatusNotFound)
		return
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	src, ok := s.findSource(base)
	if !ok {
		http.Error(w, "drawing not found", http.StatusNotFound)
		return
	}

	start := time.Now()
	m, err := vellum.Load(src)
	if err != nil {
		http.Error(w, "drawing could not be read", http.StatusInternalServerError)
		s.logger.Error("loading drawing failed", "file", src, "error", err)
		return
	}

	if err := render(w, m, target); err != nil {
		// Headers may be gone already; log and give up on this response.
		s.logger.Error("rendering drawing failed", "file", src, "format", target.String(), "error", err)
		return
	}

	renders.WithLabelValues(target.String()).Inc()
	renderDuration.WithLabelValues(target.String()).Observe(time.Since(start).Seconds())
	s.logger.Info("rendered drawing", "name", base, "format", target.String(), "duration", time.Since(start))
}

func render(w http.ResponseWriter, m *model.Model, target format.Format) error {
	switch target {
	case format.SVG:
		w.Header().Set("Content-Type", "image/svg+xml")
		return svg.NewExporter().Export(m, w)
	case format.PNG:
		w.Header().Set("Content-Type", "image/png")
		return raster.NewRenderer().Export(m, w)
	case format.PDF:
		w.Header().Set("Content-Type", "application/pdf")
		return pdf.NewExporter().Export(m, w)
	case format.DXF:
		w.Header().Set("Content-Type", "application/dxf")
		return dxf.NewExporter().Export(m, w)
	case format.JSON:
		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(m)
	case format.YAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("no renderer for %s", target)
	}
}

// sources returns the absolute paths of the drawing files the server
// exposes, one entry when serving a single file.
func (s *Server) sources() ([]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !format.Detect(s.path).Readable() {
			return nil, fmt.Errorf("%s is not a readable drawing format", s.path)
		}
		return []string{s.path}, nil
	}

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}
	var sources []string
	for _, e := range entries {
		if e.IsDir() || !format.Detect(e.Name()).Readable() {
			continue
		}
		sources = append(sources, filepath.Join(s.path, e.Name()))
	}
	return sources, nil
}

// findSource resolves a drawing's base name to its file on disk.
// Names that try to leave the served directory resolve to nothing.
func (s *Server) findSource(base string) (string, bool) {
	if base == "" || strings.Contains(base, "..") || strings.ContainsAny(base, `/\`) {
		return "", false
	}
	sources, err := s.sources()
	if err != nil {
		return "", false
	}
	for _, src := range sources {
		name := filepath.Base(src)
		if strings.TrimSuffix(name, filepath.Ext(name)) == base {
			return src, true
		}
	}
	return "", false
}
