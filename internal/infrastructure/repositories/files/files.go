// Package files holds the backup and write primitives shared by the config documents.
package files

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// BackupSuffix is appended to a document path to name its backup copy.
	BackupSuffix = ".backup"

	// SecretFileMode is used for documents holding a token.
	SecretFileMode fs.FileMode = 0o600
	dirMode        fs.FileMode = 0o700
)

// Read returns the content of path and whether it exists.
func Read(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

// Backup copies the current content of path to its sibling backup file,
// overwriting any previous backup. It returns the backup path.
func Backup(path string, current []byte) (string, error) {
	backupPath := path + BackupSuffix
	if err := os.WriteFile(backupPath, current, SecretFileMode); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return backupPath, nil
}

// Write stores data at path, creating the parent directory when missing.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, SecretFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Replace backs up the existing content (if any) and writes data. It returns
// the backup path, empty when the file did not exist.
func Replace(path string, existing []byte, existed bool, data []byte) (string, error) {
	backupPath := ""
	if existed {
		var err error
		if backupPath, err = Backup(path, existing); err != nil {
			return "", err
		}
	}
	if err := Write(path, data); err != nil {
		return backupPath, err
	}
	return backupPath, nil
}

// Unchanged reports whether data equals the existing content.
func Unchanged(existing []byte, existed bool, data []byte) bool {
	return existed && bytes.Equal(existing, data)
}
