// Package files provides snapshot file discovery. The processor accepts a
// directory as its input path; discovery resolves it to the most recently
// modified snapshot file inside.
package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "crimescope/internal/errors"
)

// snapshotExtensions are the file types the parser understands.
var snapshotExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// SnapshotFile describes one discovered snapshot candidate.
type SnapshotFile struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// FindSnapshots lists every parseable snapshot file in dir, newest first.
func FindSnapshots(dir string) ([]SnapshotFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read snapshot directory", err).
			WithContext("dir", dir)
	}

	var found []SnapshotFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !snapshotExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, SnapshotFile{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].ModTime.After(found[j].ModTime)
	})

	return found, nil
}

// LatestSnapshot returns the newest snapshot file in dir.
func LatestSnapshot(dir string) (SnapshotFile, error) {
	found, err := FindSnapshots(dir)
	if err != nil {
		return SnapshotFile{}, err
	}
	if len(found) == 0 {
		return SnapshotFile{}, apperrors.NewNotFoundError("snapshot file in " + dir).
			WithContext("dir", dir)
	}
	return found[0], nil
}

// ResolveInput turns an input path into a concrete snapshot file: a file
// path passes through unchanged, a directory resolves to its newest
// snapshot.
func ResolveInput(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", apperrors.NewParsingError("input snapshot not accessible", err).
			WithContext("path", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	latest, err := LatestSnapshot(path)
	if err != nil {
		return "", err
	}
	return latest.Path, nil
}
