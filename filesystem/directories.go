package filesystem

import (
	"os"
	"path/filepath"
)

func CreateDirectoryIfNotExists(path string) error {
	return os.MkdirAll(path, 0777)
}

// CreateParentDirectory makes sure the directory that will hold the file at
// path exists.
func CreateParentDirectory(path string) error {
	return CreateDirectoryIfNotExists(filepath.Dir(path))
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func IsDirectory(path string) bool {
	fs, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fs.IsDir()
}
