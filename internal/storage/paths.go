// Package storage persists engine settings, search statistics and perft
// reference counts in a BadgerDB database.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

const appName = "negachess"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/negachess/
// - Linux: $XDG_DATA_HOME/negachess/ or ~/.local/share/negachess/
// - Windows: %APPDATA%/negachess/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home directory")
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", errors.Wrap(err, "resolve home directory")
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", errors.Wrap(err, "resolve home directory")
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", errors.Wrapf(err, "create data directory %s", dataDir)
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", errors.Wrapf(err, "create database directory %s", dbDir)
	}
	return dbDir, nil
}
