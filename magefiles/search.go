//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs one query taken from QUERY, optionally
// narrowed by FILTER.
func Search() error {
	mg.Deps(Build)
	query := os.Getenv("QUERY")
	if query == "" {
		return fmt.Errorf("set QUERY to the search term")
	}
	args := []string{"search", "--query", query}
	if f := os.Getenv("FILTER"); f != "" {
		args = append(args, "--filter", f)
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Serve builds the CLI and starts the web server on ADDR (default :8080).
func Serve() error {
	mg.Deps(Build)
	args := []string{"serve"}
	if addr := os.Getenv("ADDR"); addr != "" {
		args = append(args, "--addr", addr)
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
