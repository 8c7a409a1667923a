package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envSource resolves environment values, preferring the process environment
// over values read from .env files.
type envSource struct {
	dotenv map[string]string
}

// loadEnv reads .env files from the given directories without touching the
// process environment. Earlier directories win.
func loadEnv(dirs ...string) (envSource, error) {
	merged := map[string]string{}
	seen := map[string]struct{}{}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path, err := filepath.Abs(filepath.Join(dir, ".env"))
		if err != nil {
			return envSource{}, fmt.Errorf("resolve .env path: %w", err)
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}

		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return envSource{}, fmt.Errorf("read %s: %w", path, err)
		}
		for key, value := range values {
			if _, ok := merged[key]; !ok {
				merged[key] = value
			}
		}
	}
	return envSource{dotenv: merged}, nil
}

func (e envSource) lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := e.dotenv[key]
	return value, ok
}
