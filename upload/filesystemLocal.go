package upload

import (
	"io"
	"os"
	"path/filepath"

	"github.com/siherrmann/sheetReconciler/helper"
)

// FilesystemLocal implements the Filesystem interface for local file storage
type FilesystemLocal struct {
	basePath string
}

// NewFilesystemLocal creates a new local filesystem instance with the specified base path
func NewFilesystemLocal(basePath string) Filesystem {
	return &FilesystemLocal{
		basePath: basePath,
	}
}

func (fs *FilesystemLocal) fullPath(path string) (string, error) {
	cleaned, err := CleanPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Join(fs.basePath, filepath.FromSlash(cleaned)), nil
}

// Write streams data from reader to a file at the specified path relative to the base path
func (fs *FilesystemLocal) Write(path string, reader io.Reader, size int64) error {
	fullPath, err := fs.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, reader)
	return err
}

// Open opens a file at the specified path and returns a ReadCloser
func (fs *FilesystemLocal) Open(path string) (io.ReadCloser, error) {
	fullPath, err := fs.fullPath(path)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

// Delete removes the file at the specified path
func (fs *FilesystemLocal) Delete(path string) error {
	fullPath, err := fs.fullPath(path)
	if err != nil {
		return err
	}
	return os.Remove(fullPath)
}

// ListFiles returns a list of all files in the base path.
// A base path that does not exist yet holds no files.
func (fs *FilesystemLocal) ListFiles() ([]File, error) {
	files := []File{}
	if _, err := os.Stat(fs.basePath); os.IsNotExist(err) {
		return files, nil
	}

	err := filepath.Walk(fs.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			relPath, err := filepath.Rel(fs.basePath, path)
			if err != nil {
				return err
			}
			files = append(files, File{
				Name:     filepath.ToSlash(relPath),
				Size:     info.Size(),
				MimeType: helper.GetMimeType(relPath),
			})
		}
		return nil
	})

	return files, err
}
