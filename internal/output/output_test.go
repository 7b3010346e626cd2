// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
}

func TestPagePath(t *testing.T) {
	tests := []struct {
		template string
		page     int
		want     string
	}{
		{"out%d.png", 3, "out3.png"},
		{"out%01d.png", 3, "out3.png"},
		{"out_%03d.tif", 7, "out_007.tif"},
		{"plain.pdf", 2, "plain.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PagePath(tt.template, tt.page))
	}
}

func TestProbe_StopsAtFirstGap(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "out1.png", "out2.png", "out4.png")

	got := New().Probe(filepath.Join(dir, "out%d.png"))
	assert.Equal(t, []string{
		filepath.Join(dir, "out1.png"),
		filepath.Join(dir, "out2.png"),
	}, got)
}

func TestProbe_MissingFirstPage(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "out2.png", "out3.png")

	assert.Empty(t, New().Probe(filepath.Join(dir, "out%d.png")))
}

func TestProbe_PaddedPlaceholder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "scan_001.tif", "scan_002.tif")

	got := New().Probe(filepath.Join(dir, "scan_%03d.tif"))
	assert.Len(t, got, 2)
}

func TestProbe_SingleFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "book.pdf")

	c := New()
	assert.Equal(t, []string{filepath.Join(dir, "book.pdf")}, c.Probe(filepath.Join(dir, "book.pdf")))
	assert.Empty(t, c.Probe(filepath.Join(dir, "missing.pdf")))
}

func TestRenameSeparations(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "doc1.tif", "doc1.s0.tif", "doc1.s1.tif", "doc2.tif", "doc2.s1.tif", "doc10.s0.tif")

	got, err := New().RenameSeparations(filepath.Join(dir, "doc%d.tif"), 2, []string{"Cyan", "Magenta"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "doc1.Cyan.tif"),
		filepath.Join(dir, "doc1.Magenta.tif"),
		filepath.Join(dir, "doc1.tif"),
		filepath.Join(dir, "doc2.Magenta.tif"),
		filepath.Join(dir, "doc2.tif"),
	}, got)

	assert.FileExists(t, filepath.Join(dir, "doc1.Cyan.tif"))
	assert.NoFileExists(t, filepath.Join(dir, "doc1.s0.tif"))
	assert.FileExists(t, filepath.Join(dir, "doc1.tif"))
	// Page 10 is outside the page count and keeps its marker.
	assert.FileExists(t, filepath.Join(dir, "doc10.s0.tif"))
}

func TestRenameSeparations_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "doc1.s0.tif")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc1.Cyan.tif"), []byte("stale"), 0o644))

	got, err := New().RenameSeparations(filepath.Join(dir, "doc%d.tif"), 1, []string{"Cyan"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "doc1.Cyan.tif")}, got)

	data, err := os.ReadFile(filepath.Join(dir, "doc1.Cyan.tif"))
	require.NoError(t, err)
	assert.Equal(t, "doc1.s0.tif", string(data))
}

func TestRenameSeparations_UnknownIndexPassesThrough(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "doc1.s5.tif")

	got, err := New().RenameSeparations(filepath.Join(dir, "doc%d.tif"), 1, []string{"Cyan"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "doc1.s5.tif")}, got)
}

// failingFS fails every rename.
type failingFS struct {
	osFS
}

func (failingFS) Rename(from, to string) error { return errors.New("permission denied") }

func TestRenameSeparations_RenameFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "doc1.s0.tif")

	c := &Collector{fs: failingFS{}}
	_, err := c.RenameSeparations(filepath.Join(dir, "doc%d.tif"), 1, []string{"Cyan"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollect)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestSeparationName(t *testing.T) {
	got, ok := separationName(filepath.Join("out", "doc1.s0.tif"), []string{"Cyan", "Magenta"})
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("out", "doc1.Cyan.tif"), got)

	got, ok = separationName(filepath.Join("out", "doc1.tif"), []string{"Cyan", "Magenta"})
	assert.False(t, ok)
	assert.Equal(t, filepath.Join("out", "doc1.tif"), got)
}

func TestGlobEscape(t *testing.T) {
	assert.Equal(t, "a[*]b[?]c[[]d]", globEscape("a*b?c[d]"))
}
