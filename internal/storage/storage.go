// Package storage uploads vehicle images to S3-compatible object storage
// and hands back public URLs that are stored verbatim on the vehicle
// document.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageStore is the boundary to hosted object storage.
type ImageStore interface {
	UploadImage(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	DeleteImage(ctx context.Context, key string) error
}

// Image is one pending upload within an add-vehicle operation.
type Image struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// ObjectKey derives the storage key for one image of an add operation.
// Make, model, a millisecond timestamp and the image index keep keys from
// colliding across and within submissions.
func ObjectKey(vehicleMake, model string, ts time.Time, index int) string {
	return fmt.Sprintf("vehicles/%s-%s-%d-%d", slug(vehicleMake), slug(model), ts.UnixMilli(), index)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// UploadAll uploads images one at a time, in order, and returns their
// public URLs. It aborts on the first failure; objects uploaded before the
// failure are NOT deleted and remain in storage as orphans.
func UploadAll(ctx context.Context, store ImageStore, vehicleMake, model string, images []Image) ([]string, error) {
	ts := time.Now()
	urls := make([]string, 0, len(images))
	for i, img := range images {
		key := ObjectKey(vehicleMake, model, ts, i)
		url, err := store.UploadImage(ctx, key, img.Reader, img.Size, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %d: %w", i+1, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// MinioStore implements ImageStore on a MinIO / S3-compatible bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string // base URL prefix for uploaded objects
}

// ConnectMinio builds a MinioStore from the STORAGE_* environment variables.
func ConnectMinio() (*MinioStore, error) {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	if endpoint == "" {
		endpoint = "minio:9000"
	}
	accessKey := os.Getenv("STORAGE_ACCESS_KEY")
	secretKey := os.Getenv("STORAGE_SECRET_KEY")
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "albercy-images"
	}
	useSSL := os.Getenv("STORAGE_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio.New error: %w", err)
	}

	publicURL := os.Getenv("STORAGE_PUBLIC_URL")
	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket)
	}

	return &MinioStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// UploadImage stores one object and returns its public URL.
func (s *MinioStore) UploadImage(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("storage client is nil")
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

// DeleteImage removes one object.
func (s *MinioStore) DeleteImage(ctx context.Context, key string) error {
	if s.client == nil {
		return fmt.Errorf("storage client is nil")
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
