// Package vellum composes, transforms, and exports 2D vector
// drawings.
//
// A drawing is a tree of named paths (lines, arcs, circles) and named
// child drawings, each child positioned by its own origin. The model
// package defines that tree and its transforms; this package wraps it
// in a fluent composer that loads a drawing, records transform steps,
// and renders the result in one call.
//
// Basic usage:
//
//	var buf bytes.Buffer
//	warnings, err := vellum.Open("bracket.dxf").ToSVG(&buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//	    log.Println(vellum.FormatWarnings(warnings))
//	}
//
// Transform chains:
//
//	warnings, err := vellum.Open("cart.json").
//	    ConvertUnits(units.Millimeter).
//	    Rotate(90, geom.Point{}).
//	    Originate().
//	    Save("cart.png")
//
// Configuration methods return a new Composer, so partial chains can
// be stored and reused:
//
//	base := vellum.Open("cart.json").ConvertUnits(units.Millimeter)
//	left, _, err := base.MirrorY().Model()
//	right, _, err := base.Model()
//
// Terminal methods return the composed value together with any
// warnings gathered along the way. Warnings flag steps that were
// skipped or approximated; the drawing is still produced.
package vellum

import (
	"github.com/vellumcad/vellum/model"
)

// Open prepares a composer for the drawing stored in filename. The
// file is not opened until a terminal method runs, so Open itself
// never fails; a missing or malformed file surfaces as the terminal's
// error.
//
// The format is detected from the extension, falling back to content
// sniffing. JSON, YAML, SVG, and DXF files can be opened.
func Open(filename string) *Composer {
	return &Composer{filename: filename}
}

// FromModel prepares a composer for an in-memory drawing. The tree is
// deep-copied when a terminal method runs; the composer never
// modifies m.
func FromModel(m *model.Model) *Composer {
	return &Composer{source: m, loaded: true}
}

// Must unwraps a (value, error) pair, panicking on error. It suits
// program initialization and examples where failure is fatal:
//
//	m := vellum.Must(vellum.Load("cart.json"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustCompose unwraps a terminal result, discarding warnings and
// panicking on error:
//
//	m := vellum.MustCompose(vellum.Open("cart.json").Model())
func MustCompose[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
