// Package upload stores the workbooks of the workspace on local disk, in memory or in S3.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/siherrmann/sheetReconciler/helper"
)

const (
	STORAGE_MODE_LOCAL  = "local"
	STORAGE_MODE_S3     = "s3"
	STORAGE_MODE_MEMORY = "memory"
)

type File struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// Filesystem is the workspace storage used by the web shell and the CLI.
type Filesystem interface {
	Write(path string, reader io.Reader, size int64) error
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
	ListFiles() ([]File, error)
}

// CreateFilesystemFromEnv creates a filesystem based on environment variables
func CreateFilesystemFromEnv() (Filesystem, error) {
	storageMode := strings.ToLower(helper.GetEnvOrDefault("SHEET_RECONCILER_STORAGE_MODE", STORAGE_MODE_LOCAL))

	switch storageMode {
	case STORAGE_MODE_S3:
		config := S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			Region:          helper.GetEnvOrDefault("S3_REGION", "us-east-1"),
			BucketName:      os.Getenv("S3_BUCKET_NAME"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			UseSSL:          helper.GetEnvOrDefault("S3_USE_SSL", "true") == "true",
		}
		if config.BucketName == "" || config.AccessKeyID == "" || config.SecretAccessKey == "" {
			return nil, fmt.Errorf("missing required S3 configuration: S3_BUCKET_NAME, S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY")
		}
		fs, err := NewFilesystemS3(config)
		if err != nil {
			return nil, err
		}
		if helper.GetEnvOrDefault("S3_CREATE_BUCKET", "false") == "true" {
			if err := fs.EnsureBucket(context.Background()); err != nil {
				return nil, err
			}
		}
		return fs, nil
	case STORAGE_MODE_MEMORY:
		return NewFilesystemMemory(), nil
	case STORAGE_MODE_LOCAL:
		basePath := helper.GetEnvOrDefault("SHEET_RECONCILER_STORAGE_PATH", "./uploads")
		return NewFilesystemLocal(basePath), nil
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s (supported: local, s3, memory)", storageMode)
	}
}

// CleanPath normalizes a workspace file name and rejects names leaving the workspace.
func CleanPath(name string) (string, error) {
	slashed := strings.ReplaceAll(name, "\\", "/")
	for _, segment := range strings.Split(slashed, "/") {
		if segment == ".." {
			return "", fmt.Errorf("invalid file name %q: path traversal", name)
		}
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	if cleaned == "" {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return cleaned, nil
}
