package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"yatube/internal/config"
)

// Storage keeps uploaded post images. Posts reference images by object name.
type Storage interface {
	UploadImage(ctx context.Context, fileName, extension string, file io.Reader, size int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	bucket string
}

func NewMinIOClient(ctx context.Context, cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinIO.BucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinIO.BucketName, err)
		}
	}

	return &MinIOClient{
		client: client,
		bucket: cfg.MinIO.BucketName,
	}, nil
}

// ObjectName builds the storage key for an uploaded image: posts/<uuid><ext>.
// extension is the one detected from the file content; the client's file
// name never reaches the key.
func ObjectName(extension string) string {
	ext := strings.ToLower(extension)
	if ext == "" || !strings.HasPrefix(ext, ".") {
		ext = ".jpg"
	}
	return "posts/" + uuid.New().String() + ext
}

func (m *MinIOClient) UploadImage(ctx context.Context, fileName, extension string, file io.Reader, size int64, contentType string) (string, error) {
	objectName := ObjectName(extension)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return objectName, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete from MinIO: %w", err)
	}
	return nil
}

// MediaURL joins the public media base with an object name.
func MediaURL(base, objectName string) string {
	if objectName == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(objectName, "/")
}
