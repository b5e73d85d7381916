package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvattis/svgfit/internal/document"
)

const testSVG = `<svg viewBox="0 0 500 500">
	<rect x="50" y="50" width="100" height="40"/>
</svg>`

func writeTestSVG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.svg")
	require.NoError(t, os.WriteFile(path, []byte(testSVG), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFitDryRun(t *testing.T) {
	input := writeTestSVG(t)
	out, err := runCommand(t, "fit", input, "--dry-run", "--buffer", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "viewBox 40 40 120 60")

	// Dry run must leave the input untouched.
	doc, err := document.LoadFile(input)
	require.NoError(t, err)
	vb, ok := doc.ViewBox()
	require.True(t, ok)
	assert.Equal(t, 500.0, vb.Width)
}

func TestFitWritesOutput(t *testing.T) {
	input := writeTestSVG(t)
	output := filepath.Join(t.TempDir(), "out.svg")

	_, err := runCommand(t, "fit", input, "-o", output, "--buffer", "10")
	require.NoError(t, err)

	doc, err := document.LoadFile(output)
	require.NoError(t, err)
	vb, ok := doc.ViewBox()
	require.True(t, ok)
	assert.Equal(t, 40.0, vb.X)
	assert.Equal(t, 40.0, vb.Y)
	assert.Equal(t, 120.0, vb.Width)
	assert.Equal(t, 60.0, vb.Height)
}

func TestFitMissingInput(t *testing.T) {
	_, err := runCommand(t, "fit", filepath.Join(t.TempDir(), "absent.svg"))
	assert.Error(t, err)
}

func TestAnalyzeReport(t *testing.T) {
	input := writeTestSVG(t)
	output := filepath.Join(t.TempDir(), "report.json")

	_, err := runCommand(t, "analyze", input, "-o", output, "--buffer", "10")
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	var report struct {
		Input      string `json:"input"`
		HasContent bool   `json:"has_content"`
		ViewBox    *struct {
			X, Y, Width, Height float64
		} `json:"view_box"`
		Elements []struct {
			Tag string `json:"tag"`
		} `json:"elements"`
	}
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Equal(t, input, report.Input)
	assert.True(t, report.HasContent)
	require.NotNil(t, report.ViewBox)
	assert.Equal(t, 40.0, report.ViewBox.X)
	require.Len(t, report.Elements, 1)
	assert.Equal(t, "rect", report.Elements[0].Tag)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
