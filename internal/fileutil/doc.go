// Package fileutil provides directory scanning utilities.
//
// The package walks a working tree and reports its subdirectories in the
// slash-separated relative form that pathspec translation operates on.
// Scanning is error-tolerant: unreadable entries are collected as
// non-fatal errors and the walk continues.
//
// # Main Components
//
// ScanOptions - Configuration struct for subdirectory scanning:
//   - ExcludeDirs: Directory names to skip (e.g., ".git", "node_modules")
//   - MaxDepth: Limit recursion depth (0 = unlimited, 1 = immediate children only)
//   - IncludeHidden: Include directories whose name starts with "."
//
// ScanResult - Results of a scan:
//   - Dirs: Relative slash-form subdirectory paths (sorted alphabetically)
//   - Errors: Non-fatal errors encountered during the scan
//
// # Usage Example
//
//	result, err := fileutil.ScanSubdirs(".", fileutil.ScanOptions{
//	    ExcludeDirs: []string{"node_modules"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, dir := range result.Dirs {
//	    fmt.Println(dir)
//	}
package fileutil
