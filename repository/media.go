package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

// minioMediaStore keeps uploaded report media in an S3-compatible bucket
// and hands back the object URL.
type minioMediaStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioMediaStore(client *minio.Client, bucket, publicURL string) domain.MediaStore {
	return &minioMediaStore{client: client, bucket: bucket, publicURL: publicURL}
}

func (s *minioMediaStore) Upload(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}
