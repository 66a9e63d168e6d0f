package paths

import (
	"os"
	"path/filepath"
)

// DataDir is the base data directory for the application.
const DataDir = "./data"

// Data subdirectories for organizing different types of data.
const (
	DataDBDir    = DataDir + "/db"
	DataMediaDir = DataDir + "/media"
)

// InboxDBPath is the default location of the message database.
const InboxDBPath = DataDBDir + "/inbox.db"

// EnsureDataDirectories ensures that all required data directories exist.
func EnsureDataDirectories() error {
	dirs := []string{
		DataDir,
		DataDBDir,
		DataMediaDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// GetMediaPath returns the full path for a media file given its relative path.
func GetMediaPath(relativePath string) string {
	return filepath.Join(DataMediaDir, relativePath)
}
