package config

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirName is the name of the verify-helper directory at the repository root.
const ConfigDirName = ".verify-helper"

// ConfigFileName is the name of the configuration file inside ConfigDirName.
const ConfigFileName = "config.yml"

// ErrNoProjectRoot is returned when neither .verify-helper nor .git is found.
var ErrNoProjectRoot = errors.New("neither .verify-helper nor .git found in the current directory or any parent")

// FindRoot walks up from the current working directory to the repository root.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from startDir until it finds a directory containing
// .verify-helper or .git. The nearest match wins.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{ConfigDirName, ".git"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}

// Path returns the config.yml path of the repository at root.
func Path(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}
