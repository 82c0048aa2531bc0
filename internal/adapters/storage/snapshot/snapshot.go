// Package snapshot reads and writes whole-collection JSON snapshot files.
// Writes go to a temporary file in the same directory, are flushed, then
// atomically renamed over the target, so a crash mid-write never exposes a
// partial file to the next load.
package snapshot

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// ErrCorrupt marks a snapshot that exists but cannot be decoded. Callers
// degrade to an empty collection and log; data loss is accepted there, not
// treated as fatal.
var ErrCorrupt = crerr.New("corrupt snapshot")

// Load decodes the snapshot at path into dst.
// POST: A missing file leaves dst untouched and returns false; a decode
// failure returns an error wrapping ErrCorrupt
func Load(path string, dst any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, crerr.Wrapf(ErrCorrupt, "read %s: %v", path, err)
	}
	if err := sonic.Unmarshal(data, dst); err != nil {
		return false, crerr.Wrapf(ErrCorrupt, "decode %s: %v", path, err)
	}
	return true, nil
}

// Save atomically replaces the snapshot at path with the encoding of v.
// PRE: the directory containing path exists or can be created
// POST: path holds the complete new snapshot, or the old one is untouched
func Save(path string, v any) error {
	data, err := sonic.ConfigDefault.MarshalIndent(v, "", "    ")
	if err != nil {
		return crerr.Wrapf(err, "encode %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Wrapf(err, "create snapshot dir for %s", path)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return crerr.Wrapf(err, "open %s", tmp)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return crerr.Wrapf(err, "write %s", tmp)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return crerr.Wrapf(err, "sync %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return crerr.Wrapf(err, "close %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return crerr.Wrapf(err, "replace %s", path)
	}
	return nil
}
