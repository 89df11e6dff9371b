package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumcad/vellum"
	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
)

func TestDiffCmd_Identical(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.json")
	right := filepath.Join(dir, "right.yaml")
	saveTestDrawing(t, left)
	saveTestDrawing(t, right)

	out := captureOutput(t, newDiffCmd(), []string{left, right})

	assert.Contains(t, out, "identical")
}

func TestDiffCmd_Different(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.json")
	right := filepath.Join(dir, "right.json")
	saveTestDrawing(t, left)

	changed := model.New()
	changed.AddPath("deck", paths.NewLine(geom.Point{}, geom.Point{X: 21, Y: 0}))
	require.NoError(t, vellum.Save(changed, right))

	out := captureOutput(t, newDiffCmd(), []string{left, right})

	assert.Contains(t, out, "--- "+left)
	assert.Contains(t, out, "+++ "+right)
	assert.Contains(t, out, "21")
}

func TestDiffCmd_ExitCode(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.json")
	right := filepath.Join(dir, "right.json")
	saveTestDrawing(t, left)

	changed := model.New()
	changed.AddPath("deck", paths.NewLine(geom.Point{}, geom.Point{X: 21, Y: 0}))
	require.NoError(t, vellum.Save(changed, right))

	cmd := newDiffCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{left, right, "--exit-code"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "differ")
}

func TestDiffCmd_ExitCodeIdentical(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.json")
	saveTestDrawing(t, left)

	cmd := newDiffCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{left, left, "--exit-code"})

	require.NoError(t, cmd.Execute())
}

func TestDiffCmd_MissingFile(t *testing.T) {
	dir := t.TempDir()
	left := filepath.Join(dir, "left.json")
	saveTestDrawing(t, left)

	cmd := newDiffCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{left, filepath.Join(dir, "ghost.json")})

	require.Error(t, cmd.Execute())
}
