package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v4"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/fastygo/alle/domain"
)

var (
	blobBucket = []byte("blobs")
	metaBucket = []byte("meta")

	// ErrInvalidToken is returned when a download token is expired, forged
	// or issued for another key.
	ErrInvalidToken = domain.NewError(domain.ErrCodeNotFound, "invalid or expired download token")
)

// BlobPathPrefix is where the HTTP layer serves BoltStore objects.
const BlobPathPrefix = "/api/blobs/"

// BoltOptions configures presigned URLs of a BoltStore.
type BoltOptions struct {
	SigningKey []byte
	BaseURL    string
	Now        func() time.Time
}

// BoltStore keeps blobs in a single bbolt file. Presigned URLs point back at
// this service and carry an HS256 token scoped to one key.
type BoltStore struct {
	db     *bolt.DB
	opts   BoltOptions
	logger *zap.Logger
}

type boltMeta struct {
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}

// OpenBoltStore opens the file and ensures the buckets exist.
func OpenBoltStore(path string, opts BoltOptions, logger *zap.Logger) (*BoltStore, error) {
	if len(opts.SigningKey) == 0 {
		return nil, errors.New("bolt storage requires a signing key")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, domain.StorageError(err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, domain.StorageError(err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{blobBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, domain.StorageError(err)
	}

	logger.Info("local blob storage ready", zap.String("path", path))
	return &BoltStore{db: db, opts: opts, logger: logger}, nil
}

func (s *BoltStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s == nil || s.db == nil {
		return domain.StorageError(bolt.ErrDatabaseNotOpen)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.StorageError(err)
	}
	if size >= 0 && int64(len(data)) != size {
		return domain.StorageError(fmt.Errorf("short write: got %d of %d bytes", len(data), size))
	}
	meta, err := json.Marshal(boltMeta{
		Size:         int64(len(data)),
		ContentType:  contentTypeOrDefault(contentType),
		LastModified: s.opts.Now().UTC(),
	})
	if err != nil {
		return domain.StorageError(err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(blobBucket).Put([]byte(key), data); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(key), meta)
	})
	if err != nil {
		return domain.StorageError(err)
	}
	return nil
}

// PresignGet signs a URL for key. The object does not have to exist yet.
func (s *BoltStore) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = PresignExpiry
	}
	now := s.opts.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   key,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
	})
	signed, err := token.SignedString(s.opts.SigningKey)
	if err != nil {
		return "", domain.StorageError(err)
	}
	return s.opts.BaseURL + BlobPathPrefix + key + "?token=" + url.QueryEscape(signed), nil
}

// Verify checks that token was issued by this store for key and is still valid.
func (s *BoltStore) Verify(key, token string) error {
	claims := &jwt.RegisteredClaims{}
	// expiry is checked against the store clock below
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithoutClaimsValidation(),
	)
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.opts.SigningKey, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	if claims.ExpiresAt == nil || !s.opts.Now().Before(claims.ExpiresAt.Time) {
		return ErrInvalidToken
	}
	if claims.Subject != key {
		return ErrInvalidToken
	}
	return nil
}

// Get returns the blob and its metadata.
func (s *BoltStore) Get(_ context.Context, key string) (ObjectInfo, []byte, error) {
	var (
		info ObjectInfo
		data []byte
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(blobBucket).Get([]byte(key))
		if raw == nil {
			return domain.ErrObjectNotFound
		}
		data = bytes.Clone(raw)
		var err error
		info, err = decodeMeta(key, tx.Bucket(metaBucket).Get([]byte(key)))
		return err
	})
	if err != nil {
		return ObjectInfo{}, nil, storageErr(err)
	}
	return info, data, nil
}

// Delete removes key. Deleting a missing key is not an error, like S3.
func (s *BoltStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(blobBucket).Delete([]byte(key)); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Delete([]byte(key))
	})
	if err != nil {
		return domain.StorageError(err)
	}
	return nil
}

func (s *BoltStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Stat(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrObjectNotFound):
		return false, nil
	}
	return false, err
}

func (s *BoltStore) Stat(_ context.Context, key string) (ObjectInfo, error) {
	var info ObjectInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(metaBucket).Get([]byte(key))
		if raw == nil {
			return domain.ErrObjectNotFound
		}
		var err error
		info, err = decodeMeta(key, raw)
		return err
	})
	if err != nil {
		return ObjectInfo{}, storageErr(err)
	}
	return info, nil
}

// Ping reports whether the file is open.
func (s *BoltStore) Ping(context.Context) error {
	if s == nil || s.db == nil {
		return domain.StorageError(bolt.ErrDatabaseNotOpen)
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(blobBucket) == nil {
			return domain.StorageError(errors.New("blob bucket missing"))
		}
		return nil
	})
}

// Size returns the number of stored blobs.
func (s *BoltStore) Size() (int, error) {
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(blobBucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the bbolt file.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func decodeMeta(key string, raw []byte) (ObjectInfo, error) {
	info := ObjectInfo{Key: key, ContentType: DefaultContentType}
	if raw == nil {
		return info, nil
	}
	var m boltMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		return info, err
	}
	info.Size = m.Size
	info.ContentType = contentTypeOrDefault(m.ContentType)
	info.LastModified = m.LastModified
	return info, nil
}

func storageErr(err error) error {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	return domain.StorageError(err)
}
