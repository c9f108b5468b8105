// Package testutils starts throwaway backing services for integration tests
package testutils

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	redisModule "github.com/testcontainers/testcontainers-go/modules/redis"

	"media-gallery/internal/config"
)

const (
	MinioUsername = "testuser"
	MinioPassword = "testpass123"
	TestBucket    = "test-media"
)

// Container wraps a running test container with its connection details
type Container struct {
	container testcontainers.Container
	Endpoint  string
}

// Terminate stops the container
func (c *Container) Terminate(ctx context.Context) error {
	if c == nil || c.container == nil {
		return nil
	}
	return c.container.Terminate(ctx)
}

// SkipIfShort skips integration tests under -short
func SkipIfShort(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// StartValkey creates and starts a Valkey test container (Redis-compatible)
func StartValkey(ctx context.Context) (*Container, error) {
	redisContainer, err := redisModule.Run(ctx,
		"valkey/valkey:7-alpine",
		redisModule.WithSnapshotting(10, 1),
		redisModule.WithLogLevel(redisModule.LogLevelVerbose),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start valkey container: %w", err)
	}

	// The module hands back a redis:// URL; go-redis wants host:port
	host, err := redisContainer.Host(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to get valkey host: %w", err), redisContainer.Terminate(ctx))
	}
	port, err := redisContainer.MappedPort(ctx, "6379/tcp")
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to get valkey port: %w", err), redisContainer.Terminate(ctx))
	}

	return &Container{
		container: redisContainer,
		Endpoint:  fmt.Sprintf("%s:%s", host, port.Port()),
	}, nil
}

// StartMinio creates and starts a MinIO test container
func StartMinio(ctx context.Context) (*Container, error) {
	minioContainer, err := minio.Run(ctx,
		"minio/minio:latest",
		minio.WithUsername(MinioUsername),
		minio.WithPassword(MinioPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start minio container: %w", err)
	}

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to get minio endpoint: %w", err), minioContainer.Terminate(ctx))
	}

	return &Container{container: minioContainer, Endpoint: endpoint}, nil
}

// CacheConfig returns a cache configuration pointing at a Valkey container
func CacheConfig(endpoint, prefix string) config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Address:      endpoint,
		KeyPrefix:    prefix,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     5,
		PoolTimeout:  4 * time.Second,
	}
}

// StorageConfig returns a storage configuration pointing at a MinIO container
func StorageConfig(endpoint string) config.StorageConfig {
	return config.StorageConfig{
		Endpoint:        endpoint,
		AccessKeyID:     MinioUsername,
		SecretAccessKey: MinioPassword,
		UseSSL:          false,
		BucketName:      TestBucket,
		Region:          "us-east-1",
	}
}
