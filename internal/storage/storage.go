// Package storage writes and reads JSON snapshots of resolved configs.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/dotd/internal/resolve"
)

// SaveJSON atomically writes data as indented JSON to path.
// The parent directory is created if needed. Data is written to a temp
// file in the same directory and renamed over path.
func SaveJSON(path string, data any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	jsonData = append(jsonData, '\n')

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// LoadJSON reads JSON from path into dest.
// Returns an error satisfying errors.Is(err, fs.ErrNotExist) if path is missing.
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SaveSnapshot writes a resolved config to path.
func SaveSnapshot(path string, res resolve.Result) error {
	if err := SaveJSON(path, res); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (resolve.Result, error) {
	var res resolve.Result
	if err := LoadJSON(path, &res); err != nil {
		return resolve.Result{}, fmt.Errorf("load snapshot %s: %w", path, err)
	}
	if res.Files == nil {
		res.Files = []string{}
	}
	return res, nil
}
