package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathtrace/gridpath"
	"github.com/katalvlaran/pathtrace/internal/server"
)

// writeImage writes a w×h black PNG with white pixels at the given points.
func writeImage(t *testing.T, w, h int, white ...gridpath.Point) string {
	t.Helper()
	im := image.NewGray(image.Rect(0, 0, w, h))
	for _, p := range white {
		im.SetGray(p.X, p.Y, color.Gray{Y: 255})
	}
	path := filepath.Join(t.TempDir(), "field.png")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, im))
	require.NoError(t, out.Close())

	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 3, 14 ")
	require.NoError(t, err)
	assert.Equal(t, gridpath.Point{X: 3, Y: 14}, p)

	for _, bad := range []string{"", "3", "a,1", "1,b", "1;2"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestTraceCmd(t *testing.T) {
	img := writeImage(t, 10, 10)
	overlay := filepath.Join(t.TempDir(), "out.png")

	stdout, stderr, err := run(t, "trace", "--image", img, "--from", "0,0", "--to", "5,5", "--overlay", overlay, "-v")
	require.NoError(t, err, stderr)

	var route gridpath.Route
	require.NoError(t, json.Unmarshal([]byte(stdout), &route))
	assert.Equal(t, 70.0, route.Cost)
	assert.Len(t, route.Points, 6)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "route traced")

	_, err = os.Stat(overlay)
	assert.NoError(t, err)
}

func TestTraceCmd_ThresholdAndVia(t *testing.T) {
	// Bright column x=3, rows 0..1: with a threshold the route must pass (3,2).
	img := writeImage(t, 6, 3, gridpath.Point{X: 3, Y: 0}, gridpath.Point{X: 3, Y: 1})

	stdout, stderr, err := run(t, "trace", "--image", img, "--threshold", "128",
		"--from", "0,0", "--via", "3,2", "--to", "5,0")
	require.NoError(t, err, stderr)

	var route gridpath.Route
	require.NoError(t, json.Unmarshal([]byte(stdout), &route))
	assert.True(t, route.Valid())
	assert.Contains(t, route.Points, gridpath.Point{X: 3, Y: 2})
	assert.NotContains(t, route.Points, gridpath.Point{X: 3, Y: 1})
}

func TestTraceCmd_Errors(t *testing.T) {
	img := writeImage(t, 4, 4)

	_, _, err := run(t, "trace", "--image", img, "--from", "0,0")
	assert.Error(t, err, "missing --to")

	_, _, err = run(t, "trace", "--image", img, "--from", "x", "--to", "1,1")
	assert.ErrorContains(t, err, "point")

	_, _, err = run(t, "trace", "--image", img, "--from", "0,0", "--to", "9,9")
	assert.ErrorIs(t, err, gridpath.ErrNoPath)

	_, _, err = run(t, "trace", "--image", filepath.Join(t.TempDir(), "none.png"), "--from", "0,0", "--to", "1,1")
	assert.Error(t, err)

	_, _, err = run(t, "trace", "--image", img, "--threshold", "999", "--from", "0,0", "--to", "1,1")
	assert.Error(t, err, "threshold out of range")
}

func TestTraceCmd_Config(t *testing.T) {
	img := writeImage(t, 10, 10)
	cfgPath := filepath.Join(t.TempDir(), "pathtrace.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("costs:\n  diagonal: 20\n"), 0o600))

	stdout, stderr, err := run(t, "--config", cfgPath, "trace", "--image", img, "--from", "0,0", "--to", "5,5")
	require.NoError(t, err, stderr)

	var route gridpath.Route
	require.NoError(t, json.Unmarshal([]byte(stdout), &route))
	assert.Equal(t, 100.0, route.Cost, "a diagonal at 20 costs as much as two axis moves")

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "trace", "--image", img, "--from", "0,0", "--to", "1,1")
	assert.Error(t, err)
}

func TestBatchCmd(t *testing.T) {
	img := writeImage(t, 10, 10)
	dir := t.TempDir()
	pairs := filepath.Join(dir, "pairs.yaml")
	require.NoError(t, os.WriteFile(pairs, []byte(`
- from: {x: 0, y: 0}
  to: {x: 5, y: 5}
- from: {x: 0, y: 0}
  to: {x: 30, y: 0}
- from: {x: 0, y: 9}
  to: {x: 9, y: 0}
`), 0o600))
	overlay := filepath.Join(dir, "batch.png")

	stdout, stderr, err := run(t, "batch", "--image", img, "--pairs", pairs, "--overlay", overlay)
	require.NoError(t, err, stderr)

	var results []server.BatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 3)
	assert.Equal(t, 70.0, results[0].Route.Cost)
	assert.Equal(t, "no_path", results[1].Result)
	assert.Nil(t, results[1].Route)
	assert.Equal(t, 126.0, results[2].Route.Cost)

	_, err = os.Stat(overlay)
	assert.NoError(t, err)
}

func TestLoadPairs_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]\n"), 0o600))
	_, err := loadPairs(empty)
	assert.ErrorContains(t, err, "no pairs")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("from: [\n"), 0o600))
	_, err = loadPairs(bad)
	assert.Error(t, err)

	_, err = loadPairs(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
