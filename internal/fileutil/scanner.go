package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the subdirectory scanning behavior
type ScanOptions struct {
	// ExcludeDirs is a list of directory names to exclude (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = immediate children only)
	MaxDepth int
	// IncludeHidden includes directories whose name starts with "."
	IncludeHidden bool
}

// ScanResult contains the results of a subdirectory scan
type ScanResult struct {
	// Dirs contains the slash-separated paths of all subdirectories,
	// relative to the scanned root, without trailing slashes
	Dirs []string
	// Errors contains any non-fatal errors encountered during scanning
	Errors []error
}

// ScanSubdirs walks root and collects every subdirectory below it.
// Paths are reported relative to root in slash form, matching the
// directory notation used by pathspec translation.
func ScanSubdirs(root string, opts ScanOptions) (*ScanResult, error) {
	// Validate directory exists
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	result := &ScanResult{
		Dirs:   make([]string, 0),
		Errors: make([]error, 0),
	}

	// Create excluded dirs map
	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		// Skip the root directory itself
		if path == root {
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		// Check if we should exclude this directory
		if excludeMap[d.Name()] {
			return filepath.SkipDir
		}
		if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return filepath.SkipDir
		}
		rel = filepath.ToSlash(rel)

		// Check max depth
		if opts.MaxDepth > 0 {
			depth := strings.Count(rel, "/") + 1
			if depth > opts.MaxDepth {
				return filepath.SkipDir
			}
			result.Dirs = append(result.Dirs, rel)
			if depth == opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		result.Dirs = append(result.Dirs, rel)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort dirs for consistent output
	sort.Strings(result.Dirs)

	return result, nil
}
