// File: optionsconfig/helper.go
package optionsconfig

import (
	"fmt"
	"os"
	"path/filepath"
)

// atomicWriteFile stages data in a temporary file next to the target
// and renames it over, so a generated file is always either the old
// version or the complete new one.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create target directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".stage-*")
	if err != nil {
		return fmt.Errorf("stage file for %q: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(0644)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("stage content for %q: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %q with staged file: %w", path, err)
	}
	return nil
}
