package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// Environment returns the process environment with the variables of envFile
// applied on top. A missing env file is not an error.
//
// Precedence (highest to lowest):
//  1. Variables from envFile
//  2. Inherited process environment
func Environment(envFile string) ([]string, error) {
	env := os.Environ()
	if envFile == "" {
		return env, nil
	}

	vars, err := godotenv.Read(envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", envFile, err)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	// Later entries override earlier ones with the same key.
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env, nil
}
