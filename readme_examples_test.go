package vellum_test

import (
	"fmt"
	"log"
	"os"

	"github.com/vellumcad/vellum"
	"github.com/vellumcad/vellum/format"
	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
	"github.com/vellumcad/vellum/units"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_loadDrawing() {
	// Works with JSON, YAML, SVG, and DXF files
	m, warnings, err := vellum.Open("drawing.svg").Model()
	// m, warnings, err := vellum.Open("drawing.json").Model()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(m.PathCount(), "paths")

	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}
}

func Example_transformChain() {
	warnings, err := vellum.Open("part.dxf").
		Move(10, 0).                  // Shift the whole drawing
		Rotate(45, geom.Point{}).     // Rotate about the global origin
		Scale(2).                     // Double every dimension
		Save("part-rotated.svg")
	_ = warnings
	_ = err
}

func Example_convertUnits() {
	// Millimeter drawing rescaled to inches on the way out
	warnings, err := vellum.Open("bracket.json").
		ConvertUnits(units.Inch).
		SaveYAML("bracket-inch.yaml")
	_ = warnings
	_ = err
}

func Example_selectSubtree() {
	// Stats for one named child instead of the whole drawing
	stats, _, err := vellum.Open("cart.json").
		Select("chassis", "wheel").
		Stats()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Paths:", stats.Paths)
	fmt.Println("Length:", stats.Length)
}

func Example_renderFormats() {
	c := vellum.Open("drawing.json")

	// Writer forms for streaming
	_, err := c.ToSVG(os.Stdout)
	_ = err

	// Save picks the format from the extension
	_, err = c.Save("drawing.png")
	_ = err
	_, err = c.Save("drawing.pdf")
	_ = err
}

func Example_measure() {
	ext, _, err := vellum.Open("drawing.json").Extents()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Width:", ext.Width())
	fmt.Println("Height:", ext.Height())

	stats, _, _ := vellum.Open("drawing.json").Stats()
	fmt.Println("Models:", stats.Models)
	fmt.Println("Paths:", stats.Paths)
	fmt.Println("Depth:", stats.Depth)
	fmt.Println("Total length:", stats.Length)
}

func Example_openDrawings() {
	// From file path (format auto-detected by extension, then content)
	c := vellum.Open("drawing.svg")
	_ = c
	c = vellum.Open("drawing.yaml")
	_ = c

	// From an existing model
	m := model.New()
	m.AddPath("edge", paths.NewLine(geom.Point{}, geom.Point{X: 10}))
	c = vellum.FromModel(m)
	_ = c

	// From a reader with an explicit format
	f, _ := os.Open("drawing.dxf")
	defer f.Close()
	m, err := vellum.LoadReader(f, format.DXF)
	_ = m
	_ = err
}

func Example_mirror() {
	// Flip a template part for the opposite side of an assembly
	warnings, err := vellum.Open("bracket-left.json").
		MirrorX().
		Originate(). // bake origins in so extents stay positive
		Save("bracket-right.json")
	_ = warnings
	_ = err
}

func Example_warnings() {
	m, warnings, err := vellum.Open("drawing.json").
		ConvertUnits(units.Centimeter).
		Model()
	if err != nil {
		log.Fatal(err) // Fatal error
	}
	_ = m

	for _, w := range warnings {
		log.Println("Warning:", w.Message) // Non-fatal issues
	}

	// Format all warnings
	formatted := vellum.FormatWarnings(warnings)
	_ = formatted
}

func Example_errorHandling() {
	// Panic on error (for scripts/tests)
	m := vellum.Must(vellum.Load("drawing.json"))
	stats := vellum.MustCompose(vellum.FromModel(m).Stats())
	_ = stats
}
