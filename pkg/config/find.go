package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileNames are the config file names looked for by FindFile.
var FileNames = []string{".repocheck.yaml", ".repocheck.yml"}

// ErrNotFound is returned by FindFile when no config file exists.
var ErrNotFound = errors.New("config file not found")

// FindFile returns explicitPath if set, otherwise walks up from startDir
// looking for a config file. The walk stops at a git root, the user's
// home directory or the filesystem root.
func FindFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, _ := os.UserHomeDir()

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(currentDir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		if currentDir == homeDir {
			break
		}
		if _, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", ErrNotFound
}
