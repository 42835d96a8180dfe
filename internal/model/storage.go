package model

import (
	"context"
	"io"
)

// Storage reads objects from blob storage.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Download is an open artifact ready to stream to a client. The receiver must close Body.
type Download struct {
	Body        io.ReadCloser
	FileName    string
	ContentType string
	Size        int64
}
