// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output discovers the files an interpreter run produced and renames
// per-separation files to their colorant names.
// Implements: docs/ARCHITECTURE § Output Collector.
//
// Discovery is by existence probing on the file system; the interpreter does
// not report what it wrote.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// ErrCollect wraps every file system failure during collection.
var ErrCollect = errors.New("collecting output files")

// placeholder matches the page number directive in an output template:
// %d, %01d, %03d and similar.
var placeholder = regexp.MustCompile(`%0?\d*d`)

// fileSystem abstracts the calls the collector makes, for testing.
type fileSystem interface {
	Exists(path string) bool
	Glob(pattern string) ([]string, error)
	Remove(path string) error
	Rename(from, to string) error
}

type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }
func (osFS) Remove(path string) error              { return os.Remove(path) }
func (osFS) Rename(from, to string) error          { return os.Rename(from, to) }

// Collector finds and renames output files.
type Collector struct {
	fs fileSystem
}

// New returns a collector backed by the operating system's file system.
func New() *Collector {
	return &Collector{fs: osFS{}}
}

// PagePath substitutes page into the first placeholder of template. A
// template without a placeholder is returned unchanged.
func PagePath(template string, page int) string {
	loc := placeholder.FindStringIndex(template)
	if loc == nil {
		return template
	}
	verb := template[loc[0]:loc[1]]
	return template[:loc[0]] + fmt.Sprintf(verb, page) + template[loc[1]:]
}

// HasPlaceholder reports whether template carries a page number directive.
func HasPlaceholder(template string) bool {
	return placeholder.MatchString(template)
}

// Probe returns the files produced for template. Page numbers 1, 2, 3... are
// substituted until the first missing file; pages after a gap are not
// reported. A template without a placeholder yields that single file if it
// exists.
func (c *Collector) Probe(template string) []string {
	if !HasPlaceholder(template) {
		if c.fs.Exists(template) {
			return []string{template}
		}
		return nil
	}

	var found []string
	for page := 1; ; page++ {
		path := PagePath(template, page)
		if !c.fs.Exists(path) {
			return found
		}
		found = append(found, path)
	}
}

// RenameSeparations rewrites the ".s<N>." marker of each per-separation file
// for pages 1..pageCount to ".<name>.", where name is names[N]. Files without
// a marker are composites and are returned unchanged. An existing file at a
// destination is replaced. The first rename failure aborts the collection.
func (c *Collector) RenameSeparations(template string, pageCount int, names []string) ([]string, error) {
	dir := filepath.Dir(template)
	base := strings.TrimSuffix(filepath.Base(placeholder.ReplaceAllString(template, "")), filepath.Ext(template))

	var out []string
	for page := 1; page <= pageCount; page++ {
		prefix := base + strconv.Itoa(page)
		matches, err := c.fs.Glob(filepath.Join(globEscape(dir), globEscape(prefix)+"*"))
		if err != nil {
			return out, fmt.Errorf("%w: listing page %d: %v", ErrCollect, page, err)
		}
		sort.Strings(matches)

		for _, path := range matches {
			if !pageBoundary(filepath.Base(path), prefix) {
				continue
			}
			dest, ok := separationName(path, names)
			if !ok {
				out = appendUnique(out, path)
				continue
			}
			if c.fs.Exists(dest) {
				if err := c.fs.Remove(dest); err != nil {
					return out, fmt.Errorf("%w: removing %s: %v", ErrCollect, dest, err)
				}
			}
			if err := c.fs.Rename(path, dest); err != nil {
				return out, fmt.Errorf("%w: renaming %s: %v", ErrCollect, path, err)
			}
			out = appendUnique(out, dest)
		}
	}
	return out, nil
}

// appendUnique keeps a name left over from an earlier run from being
// reported twice when a fresh separation file is renamed onto it.
func appendUnique(list []string, path string) []string {
	if slices.Contains(list, path) {
		return list
	}
	return append(list, path)
}

// pageBoundary reports whether name continues past prefix with something
// other than a digit, so page 1 does not also pick up pages 10-19.
func pageBoundary(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	return rest == "" || rest[0] < '0' || rest[0] > '9'
}

// separationName returns path with its first matching ".s<N>." marker in the
// file name replaced by names[N].
func separationName(path string, names []string) (string, bool) {
	dir, file := filepath.Split(path)
	for i, name := range names {
		marker := ".s" + strconv.Itoa(i) + "."
		if strings.Contains(file, marker) {
			return dir + strings.Replace(file, marker, "."+name+".", 1), true
		}
	}
	return path, false
}

// globEscape quotes the glob metacharacters in s with single-character
// classes, which works with both path separators.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
