// Package storage keeps attachment blobs in an S3-compatible bucket or, for
// single-node installs, in a local bbolt file.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/alle/internal/config"
)

// DefaultContentType is reported for objects stored without a MIME type.
const DefaultContentType = "application/octet-stream"

// PresignExpiry is the lifetime of download URLs handed to clients.
const PresignExpiry = time.Hour

// ObjectInfo is the metadata the store keeps next to a blob.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Store is the object storage port used by the attachment service.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Ping(ctx context.Context) error
	Close() error
}

// New opens the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, publicBaseURL string, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		s3, err := NewS3Store(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s3, nil
	case config.StorageDriverLocal:
		bolt, err := OpenBoltStore(cfg.LocalPath, BoltOptions{
			SigningKey: []byte(cfg.SigningKey),
			BaseURL:    publicBaseURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return bolt, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// ObjectKey builds the key of a new attachment: tasks/<task>/<uuid>_<name>.
func ObjectKey(taskID int32, fileName string) string {
	return fmt.Sprintf("tasks/%d/%s_%s", taskID, uuid.NewString(), SanitizeFileName(fileName))
}

// SanitizeFileName replaces every byte outside [A-Za-z0-9._-] with '_'.
// Separators are replaced too, so the result never leaves the key prefix.
func SanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return DefaultContentType
	}
	return ct
}
