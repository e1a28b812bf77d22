package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes a rendered document to path, creating parent
// directories as needed. The write goes through a temp file and rename
// so a crash never leaves a half-written report behind.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename document: %w", err)
	}
	return nil
}
