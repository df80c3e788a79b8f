package ssc

import (
	"fmt"
	"os"
)

// BackupPath returns the path the original file is copied to before an
// in-place write.
func BackupPath(path string) string {
	return path + "~"
}

// WriteWithBackup writes the simfile over path, first copying the original
// contents to BackupPath(path). The backup is written before the original is
// touched, so a failed write never loses data.
func WriteWithBackup(path string, sim *Simfile) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read original simfile: %w", err)
	}
	if err := os.WriteFile(BackupPath(path), original, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.WriteFile(path, []byte(sim.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write simfile: %w", err)
	}
	return nil
}

// WriteFile writes the simfile to a new path without any backup.
func WriteFile(path string, sim *Simfile) error {
	if err := os.WriteFile(path, []byte(sim.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write simfile: %w", err)
	}
	return nil
}
