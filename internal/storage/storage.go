package storage

import (
	"context"
	"errors"
)

// ErrStorageDisabled is returned by every operation when no object store is
// configured.
var ErrStorageDisabled = errors.New("object storage is disabled")

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// ObjectStorage captures the minimal S3-compatible operations used to publish
// and retrieve planning exports.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
	UploadObject(ctx context.Context, key string, data []byte) error
}

type disabledStorage struct{}

// Disabled returns an ObjectStorage whose operations all fail with
// ErrStorageDisabled.
func Disabled() ObjectStorage {
	return disabledStorage{}
}

func (disabledStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return nil, ErrStorageDisabled
}

func (disabledStorage) DownloadObject(ctx context.Context, key, destPath string) error {
	return ErrStorageDisabled
}

func (disabledStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	return ErrStorageDisabled
}
