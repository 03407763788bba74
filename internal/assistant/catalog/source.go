package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	apperrors "hr-assistant/internal/common/errors"
)

// Source yields the raw bytes of a catalog document. An absent document is
// reported as a CATALOG_SOURCE_NOT_FOUND StandardError.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads a catalog document from the local filesystem.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NewCatalogSourceNotFoundError(s.Name())
		}
		return nil, fmt.Errorf("read %s: %w", s.Name(), err)
	}
	return data, nil
}

// KeyReader is the subset of redis.Cmdable a RedisSource needs.
type KeyReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSource reads a catalog document stored as a single string value, so
// several replicas can share one centrally published catalog.
type RedisSource struct {
	client KeyReader
	key    string
}

func NewRedisSource(client KeyReader, key string) *RedisSource {
	return &RedisSource{client: client, key: key}
}

func (s *RedisSource) Name() string {
	return "redis:" + s.key
}

func (s *RedisSource) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewCatalogSourceNotFoundError(s.Name())
		}
		return nil, fmt.Errorf("read %s: %w", s.Name(), err)
	}
	return data, nil
}
