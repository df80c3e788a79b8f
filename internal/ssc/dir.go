package ssc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dir describes the simfile candidates found in a song directory.
type Dir struct {
	Path    string
	SSCPath string // empty when the directory has no .ssc file
	SMPath  string // empty when the directory has no .sm file
}

// OpenDir scans a song directory for simfiles. When several files share an
// extension, the lexicographically first one wins, matching StepMania's
// directory scan order.
func OpenDir(path string) (*Dir, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read song directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	d := &Dir{Path: path}
	for _, name := range names {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".ssc":
			if d.SSCPath == "" {
				d.SSCPath = filepath.Join(path, name)
			}
		case ".sm":
			if d.SMPath == "" {
				d.SMPath = filepath.Join(path, name)
			}
		}
	}
	return d, nil
}

// IsSongDir reports whether the directory directly contains a simfile.
func IsSongDir(path string) bool {
	d, err := OpenDir(path)
	if err != nil {
		return false
	}
	return d.SSCPath != "" || d.SMPath != ""
}
