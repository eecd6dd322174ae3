package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// run executes the CLI with a config file that does not exist, so only
// defaults, flags and the environment apply.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func generateInto(t *testing.T, dir string, extra ...string) (string, string, string) {
	t.Helper()
	elements := filepath.Join(dir, "stockElements.json")
	styles := filepath.Join(dir, "textStyles.json")
	args := append([]string{"generate", "--seed", "42", "--elements-out", elements, "--styles-out", styles}, extra...)
	out, err := run(t, args...)
	require.NoError(t, err)
	return out, elements, styles
}

func TestGenerate_All(t *testing.T) {
	dir := t.TempDir()
	out, elements, styles := generateInto(t, dir)

	assert.Contains(t, out, "500 items in 5 categories")
	assert.Contains(t, out, "500 styles")
	assert.Contains(t, out, "42")
	assert.FileExists(t, elements)
	assert.FileExists(t, styles)
}

func TestGenerate_SeedReproducible(t *testing.T) {
	_, e1, s1 := generateInto(t, t.TempDir(), "--workers", "1")
	_, e2, s2 := generateInto(t, t.TempDir(), "--workers", "8")

	for _, pair := range [][2]string{{e1, e2}, {s1, s2}} {
		a, err := os.ReadFile(pair[0])
		require.NoError(t, err)
		b, err := os.ReadFile(pair[1])
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestGenerate_StylesOnlyYAML(t *testing.T) {
	dir := t.TempDir()
	styles := filepath.Join(dir, "textStyles.yaml")
	out, err := run(t, "generate", "styles", "--seed", "3", "--styles-out", styles)
	require.NoError(t, err)
	assert.NotContains(t, out, "items in")

	data, err := os.ReadFile(styles)
	require.NoError(t, err)
	assert.Contains(t, string(data), "category: Headlines")
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"unknown target", []string{"generate", "fonts"}},
		{"bad format", []string{"generate", "--format", "toml", "--elements-out", filepath.Join(dir, "e.json")}},
		{"missing directory", []string{"generate", "elements", "--elements-out", filepath.Join(dir, "nope", "e.json")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_EnvSeed(t *testing.T) {
	t.Setenv("STOCKGEN_SEED", "42")
	dir := t.TempDir()
	out, err := run(t, "generate", "styles", "--styles-out", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "seed 42")
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	_, elements, styles := generateInto(t, dir)

	out, err := run(t, "inspect", "--elements", elements, "--styles", styles)
	require.NoError(t, err)
	assert.Contains(t, out, "Element catalog")
	assert.Contains(t, out, "buttons")
	assert.Contains(t, out, "Outline")

	out, err = run(t, "inspect", "--elements", elements, "--styles", styles, "--category", "shapes", "--sample", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Rectangle")
	assert.Contains(t, out, "Circle")
	assert.NotContains(t, out, "Triangle")

	_, err = run(t, "inspect", "--elements", elements, "--styles", styles, "--category", "Shapes", "--sample", "1")
	require.NoError(t, err)

	out, err = run(t, "inspect", "--elements", elements, "--styles", styles, "--category", "sale", "--sample", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "textShadow=")

	_, err = run(t, "inspect", "--elements", elements, "--styles", styles, "--category", "Stickers")
	assert.Error(t, err)
}

func TestInspect_MissingCatalog(t *testing.T) {
	_, err := run(t, "inspect", "--elements", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "hero.ts")
	original := "export const s = { moods: ['bold', 'mystery'], purpose: ['launch'] };\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	out, err := run(t, "tags", "--root", root, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, `"bold" -> "urgent"`)
	assert.Contains(t, out, `unknown moods value "mystery"`)
	assert.Contains(t, out, "would rewrite 2 values in 1 files")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	out, err = run(t, "tags", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "rewrote 2 values in 1 files")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export const s = { moods: ['urgent', 'mystery'], purpose: ['awareness'] };\n", string(data))
}

func TestTags_FailuresExitNonZero(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.ts"), []byte("export const s = { moods: ['bold' ;\n"), 0o644))

	_, err := run(t, "tags", "--root", root)
	assert.Error(t, err)
}

func TestTags_CustomVocabulary(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "hero.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const s = { tone: ['stiff'] };\n"), 0o644))
	vocab := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(vocab, []byte("fields:\n  - field: tone\n    allowed: [formal]\n    rewrites: {stiff: formal}\n"), 0o644))

	_, err := run(t, "tags", "--root", root, "--vocabulary", vocab)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export const s = { tone: ['formal'] };\n", string(data))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stockgen "+version+"\n", out)
}
