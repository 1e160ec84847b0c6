package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetPathsieveHome returns the pathsieve home directory
// Priority order:
//  1. PATHSIEVE_HOME environment variable (if set)
//  2. Nearest ancestor directory containing .pathsieve (walking up from cwd)
//  3. Current working directory (fallback)
//
// The directory is created if it doesn't exist
func GetPathsieveHome() (string, error) {
	// Try env var first
	if home := os.Getenv("PATHSIEVE_HOME"); home != "" {
		return home, nil
	}

	// Walk up from cwd looking for an existing .pathsieve directory
	root, err := findHomeRoot()
	if err == nil && root != "" {
		return filepath.Join(root, ".pathsieve"), nil
	}

	// Fallback to current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	home := filepath.Join(cwd, ".pathsieve")

	// Ensure directory exists
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create pathsieve home directory: %w", err)
	}

	return home, nil
}

// findHomeRoot finds the nearest ancestor directory (including cwd) that
// already contains a .pathsieve directory
func findHomeRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	current := cwd
	for {
		candidate := filepath.Join(current, ".pathsieve")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return current, nil
		}

		// Move up one directory
		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			break
		}
		current = parent
	}

	return "", fmt.Errorf("no .pathsieve directory found above %s", cwd)
}
