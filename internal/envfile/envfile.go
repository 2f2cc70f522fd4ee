// Package envfile loads `.env` files into the process environment and keeps
// the parsed values around for the environment listings.
package envfile

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load applies the env file at path to the process environment and returns
// its parsed key/value pairs. A missing file is not an error; it yields an
// empty map.
func Load(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("accessing env file %s: %w", path, err)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parsing env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("loading env file %s: %w", path, err)
	}
	return values, nil
}
