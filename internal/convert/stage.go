// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// stageInput copies src to a uniquely named file in tempDir (os.TempDir()
// when empty) and returns the copy's path. The interpreter only ever sees the
// copy.
func stageInput(src, tempDir string) (string, error) {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	dst := filepath.Join(tempDir, uuid.NewString()+strings.ToLower(filepath.Ext(src)))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("staging input: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("staging input: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("staging input: %w", err)
	}
	return dst, nil
}

// removeStaged deletes a staged copy. A copy that is already gone is not an
// error.
func removeStaged(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
