// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/substrate/storage"
)

const (
	// Transient write failures are retried before surfacing ErrStorageIO.
	// NotFound and configuration errors are never retried.
	writeAttempts = 3
	retryDelay    = 50 * time.Millisecond
)

// loadSnapshot reads the JSON document at path into v. A missing file is
// not an error: v is left untouched and ok is false. Unreadable or corrupt
// snapshots surface ErrStorageIO.
func loadSnapshot(path string, v any) (ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: reading snapshot %s: %v", storage.ErrStorageIO, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: corrupt snapshot %s: %v", storage.ErrStorageIO, path, err)
	}
	return true, nil
}

// writeSnapshot marshals v and atomically replaces path: the document is
// written to a temporary file in the target directory and renamed over the
// target, so the old snapshot stays readable until the new one is fully
// committed. Failed attempts are retried a bounded number of times.
func writeSnapshot(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot %s: %v", storage.ErrStorageIO, path, err)
	}

	var lastErr error
	for attempt := 0; attempt < writeAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}
		if lastErr = replaceFile(path, data); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: writing snapshot %s: %v", storage.ErrStorageIO, path, lastErr)
}

// replaceFile performs one temp-file-then-rename write.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
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

// ensureDir creates the snapshot's parent directory if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory %s: %v", storage.ErrStorageIO, dir, err)
	}
	return nil
}
