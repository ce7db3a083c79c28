package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".ailean"

// GetRuntimePath resolves the runtime directory before the full config is
// parsed, so the .env file inside it can be loaded first.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("AILEAN_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
