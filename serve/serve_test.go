package serve

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vellumcad/vellum"
	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
	"github.com/vellumcad/vellum/units"
)

// drawingDir writes two small drawings into a temp directory.
func drawingDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cart := model.New()
	cart.Units = units.Millimeter
	cart.AddPath("deck", paths.NewLine(geom.Point{}, geom.Point{X: 20, Y: 0}))
	wheel := model.New().Move(geom.Point{X: 5, Y: 0})
	wheel.AddPath("rim", paths.NewCircle(geom.Point{}, 2))
	cart.AddModel("wheel", wheel)
	if err := vellum.Save(cart, filepath.Join(dir, "cart.json")); err != nil {
		t.Fatalf("Save cart: %v", err)
	}

	plate := model.New()
	plate.AddPath("edge", paths.NewCircle(geom.Point{}, 10))
	if err := vellum.Save(plate, filepath.Join(dir, "plate.yaml")); err != nil {
		t.Fatalf("Save plate: %v", err)
	}

	return dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := NewServer(t.TempDir(), nil).Handler()

	w := get(t, h, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestListDrawings(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	w := get(t, h, "/drawings")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var items []listing
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %+v, want two", items)
	}
	if items[0].Name != "cart" || items[0].Format != "json" {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Name != "plate" || items[1].Format != "yaml" {
		t.Errorf("second item = %+v", items[1])
	}
}

func TestListEmptyDirectory(t *testing.T) {
	h := NewServer(t.TempDir(), nil).Handler()

	w := get(t, h, "/drawings")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want empty array", w.Body.String())
	}
}

func TestRenderSVG(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	w := get(t, h, "/drawings/cart.svg")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<svg") || !strings.Contains(body, "<circle") {
		t.Errorf("svg body missing elements:\n%s", body)
	}
}

func TestRenderPNG(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	w := get(t, h, "/drawings/cart.png")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "\x89PNG\r\n\x1a\n") {
		t.Error("body missing png signature")
	}
}

func TestRenderPDF(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	w := get(t, h, "/drawings/cart.pdf")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Error("body missing pdf header")
	}
}

func TestRenderDXF(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	w := get(t, h, "/drawings/plate.dxf")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "CIRCLE") {
		t.Error("dxf body missing entity")
	}
}

func TestRenderJSON(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	w := get(t, h, "/drawings/cart.json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var m model.Model
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decoding drawing: %v", err)
	}
	if m.PathCount() != 2 {
		t.Errorf("path count = %d, want 2", m.PathCount())
	}
	if m.Units != units.Millimeter {
		t.Errorf("units = %q", m.Units)
	}
}

func TestRenderYAMLFromJSONSource(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	w := get(t, h, "/drawings/cart.yaml")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "units: mm") {
		t.Errorf("yaml body = %q", w.Body.String())
	}
}

func TestDrawingNotFound(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	if w := get(t, h, "/drawings/ghost.svg"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUnsupportedOutputFormat(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	if w := get(t, h, "/drawings/cart.bmp"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestFindSourceRejectsTraversal(t *testing.T) {
	s := NewServer(drawingDir(t), nil)

	for _, base := range []string{"../cart", "..", `sub\cart`, "a/b", ""} {
		if _, ok := s.findSource(base); ok {
			t.Errorf("findSource(%q) resolved, want rejection", base)
		}
	}
}

func TestSingleFileServer(t *testing.T) {
	dir := drawingDir(t)
	h := NewServer(filepath.Join(dir, "cart.json"), nil).Handler()

	w := get(t, h, "/drawings")
	var items []listing
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if len(items) != 1 || items[0].Name != "cart" {
		t.Fatalf("items = %+v, want just cart", items)
	}

	if w := get(t, h, "/drawings/cart.svg"); w.Code != http.StatusOK {
		t.Errorf("render status = %d", w.Code)
	}
	if w := get(t, h, "/drawings/plate.svg"); w.Code != http.StatusNotFound {
		t.Errorf("foreign drawing status = %d, want 404", w.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	h := NewServer(drawingDir(t), nil).Handler()

	if w := get(t, h, "/drawings/cart.svg"); w.Code != http.StatusOK {
		t.Fatalf("render status = %d", w.Code)
	}

	w := get(t, h, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "vellum_renders_total") {
		t.Error("metrics missing render counter")
	}
	if !strings.Contains(body, "vellum_render_duration_seconds") {
		t.Error("metrics missing duration histogram")
	}
}
