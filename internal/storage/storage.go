// Package storage abstracts where uploaded medical media and generated
// reports live. Handlers only see the Storage interface; the backend is
// chosen from configuration at startup.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage is the file backend used for patient uploads and reports.
type Storage interface {
	// Save stores the reader's contents at path, overwriting any
	// existing object.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get opens the object at path for reading.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Missing objects are not an
	// error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether an object is stored at path.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the object.
	GetURL(ctx context.Context, path string) (string, error)

	// GetSignedURL returns a temporary signed URL for private objects.
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// GetSize returns the object size in bytes.
	GetSize(ctx context.Context, path string) (int64, error)
}

// Config selects and parameterizes the backend.
type Config struct {
	Type      string // "local" or "s3"
	BasePath  string // local: root directory
	BaseURL   string // public URL base
	Bucket    string // s3
	Region    string // s3
	AccessKey string // s3
	SecretKey string // s3
	Endpoint  string // s3-compatible endpoint override
}

// NewStorage builds the backend named by cfg.Type.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
