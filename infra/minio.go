package infra

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/qbnguyen/cloudlet-service/config"
)

// MinioStore is the self-hosted ObjectStore backend. A single bucket holds
// all files; object keys are "<folder>/<filename>".
type MinioStore struct {
	Client   *minio.Client
	Endpoint string
	Bucket   string
	UseSSL   bool
}

func InitMinioStore(cfg *config.EnvConfig) *MinioStore {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		panic(fmt.Sprintf("Failed to check MinIO bucket: %v", err))
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			panic(fmt.Sprintf("Failed to create MinIO bucket: %v", err))
		}
		log.Printf("Created MinIO bucket %s", cfg.Minio.Bucket)
	}

	return &MinioStore{
		Client:   client,
		Endpoint: endpoint,
		Bucket:   cfg.Minio.Bucket,
		UseSSL:   cfg.Minio.UseSSL,
	}
}

func (m *MinioStore) objectURL(key string) string {
	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.Endpoint, m.Bucket, key)
}

func (m *MinioStore) Upload(ctx context.Context, data io.Reader, size int64, filename, contentType, folder string) (*UploadResult, error) {
	key := filename
	if folder != "" {
		key = strings.Trim(folder, "/") + "/" + filename
	}

	info, err := m.Client.PutObject(ctx, m.Bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &UploadResult{
		Name:     filename,
		FilePath: key,
		URL:      m.objectURL(key),
		FileType: contentType,
		Size:     info.Size,
	}, nil
}

// Search scans the bucket for objects whose final path segment matches name.
func (m *MinioStore) Search(ctx context.Context, name string, limit int) ([]StoredObject, error) {
	var matches []StoredObject

	for obj := range m.Client.ListObjects(ctx, m.Bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		key := obj.Key
		base := key
		if idx := strings.LastIndex(key, "/"); idx >= 0 {
			base = key[idx+1:]
		}
		if base != name {
			continue
		}
		matches = append(matches, StoredObject{
			Name: key,
			Path: key,
			Size: obj.Size,
		})
		if limit > 0 && len(matches) >= limit {
			break
		}
	}

	return matches, nil
}

func (m *MinioStore) DeleteByName(ctx context.Context, name string) error {
	if err := m.Client.RemoveObject(ctx, m.Bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}
