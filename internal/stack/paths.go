// Package stack implements stackctl's stack operations: manifest path
// resolution, create/update/delete orchestration around kubectl, the
// project environment commands, and the status report.
package stack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestPath derives the manifest file for a context under the project
// root: <root>/stacks/<context>.yml.
func ManifestPath(root, context string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(root, "stacks", context+".yml")
}

// RequireManifest fails fast when the manifest for the context is missing,
// before any external tool is invoked.
func RequireManifest(root, context string) (string, error) {
	context = strings.TrimSpace(context)
	if context == "" {
		return "", fmt.Errorf("context must not be empty")
	}
	path := ManifestPath(root, context)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("manifest %s does not exist for context %q", path, context)
		}
		return "", fmt.Errorf("stat manifest %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("manifest %s is a directory", path)
	}
	return path, nil
}
