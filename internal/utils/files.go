package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// ResolveDataFile picks the KPI file to load. An explicit override wins;
// otherwise name is joined to dir. The result must exist and be a regular file.
func ResolveDataFile(override, dir, name string) (string, error) {
	path := override
	if path == "" {
		if name == "" {
			return "", errors.New("no data file configured")
		}
		path = filepath.Join(dir, name)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("data file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("data file %s is a directory", path)
	}
	return path, nil
}
