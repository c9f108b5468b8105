package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"media-gallery/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient serves gallery assets out of an S3-compatible bucket by
// presigning short-lived GET URLs
type MinIOClient struct {
	client     *minio.Client
	bucketName string
	region     string
	expiry     time.Duration
}

var _ Assets = (*MinIOClient)(nil)

func NewMinIOClient(ctx context.Context, cfg config.StorageConfig, expiry time.Duration) (*MinIOClient, error) {
	var creds *credentials.Credentials

	// Use AWS credentials chain if no static credentials are provided
	// This supports EKS Pod Identity, IAM roles, AWS credentials file, etc.
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	} else {
		creds = credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	if expiry <= 0 {
		expiry = time.Hour
	}

	minioClient := &MinIOClient{
		client:     client,
		bucketName: cfg.BucketName,
		region:     cfg.Region,
		expiry:     expiry,
	}

	if err := minioClient.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return minioClient, nil
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", m.bucketName, err)
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucketName, minio.MakeBucketOptions{Region: m.region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", m.bucketName, err)
		}
	}

	return nil
}

// Resolve presigns a GET URL for the object named src
func (m *MinIOClient) Resolve(ctx context.Context, src string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucketName, src, m.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", src, err)
	}
	return u.String(), nil
}

// Serve redirects the browser to a presigned URL for src
func (m *MinIOClient) Serve(w http.ResponseWriter, r *http.Request, src string) {
	if _, err := m.client.StatObject(r.Context(), m.bucketName, src, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to locate media asset", http.StatusBadGateway)
		return
	}

	u, err := m.Resolve(r.Context(), src)
	if err != nil {
		http.Error(w, "Failed to generate media URL", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, u, http.StatusFound)
}

// UploadFile stores an asset under objectName
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Health checks that the bucket is reachable
func (m *MinIOClient) Health(ctx context.Context) error {
	if _, err := m.client.BucketExists(ctx, m.bucketName); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
