//go:build mage

// Package main contains Mage build targets for gsconvert developer tooling.
// Implements: docs/ARCHITECTURE § Developer Tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI writes to by default.
var projectDirs = []string{
	"output",
	"output/manifests",
	"var",
}

// Init creates the local working directories and a starter config file.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := os.WriteFile(configFile, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", configFile, err)
		}
		fmt.Println("  ", configFile)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir     = "bin"
	binName    = "gsconvert"
	cmdPkg     = "./cmd/gsconvert"
	configFile = "gsconvert.yaml"
)

const starterConfig = `engine:
  library_path: ""
  encoding: auto
render:
  device: png16m
  resolution:
    x: 150
  text_alpha_bits: 4
  graphics_alpha_bits: 4
journal:
  path: var/journal.db
log:
  level: info
  format: console
`

// Build compiles the CLI binary into bin/, stamping the version from
// GSCONVERT_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + versionString()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Install builds and copies the binary into GOBIN.
func Install() error {
	mg.Deps(Test.Unit)
	return sh.RunV("go", "install", "-ldflags", "-X main.version="+versionString(), cmdPkg)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

func versionString() string {
	if v := os.Getenv("GSCONVERT_VERSION"); v != "" {
		return v
	}
	return "dev"
}

// Stats prints Go production and test line counts per top-level directory
// and the documentation word count.
func Stats() error {
	counts := map[string]*lineCount{}
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		top := strings.SplitN(filepath.ToSlash(path), "/", 2)[0]
		c, ok := counts[top]
		if !ok {
			c = &lineCount{}
			counts[top] = c
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(counts))
	for dir := range counts {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var total lineCount
	for _, dir := range dirs {
		c := counts[dir]
		fmt.Printf("%-12s prod %6d  test %6d\n", dir, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Printf("%-12s prod %6d  test %6d\n", "total", total.prod, total.test)

	words, err := docWords("docs")
	if err != nil {
		return err
	}
	fmt.Printf("Words (documentation): %d\n", words)
	return nil
}

type lineCount struct {
	prod, test int
}

func nonBlankLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

// docWords counts words in the Markdown and YAML files under root. A
// missing root counts as zero.
func docWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(bytes.Fields(data))
		return nil
	})
	return total, err
}
