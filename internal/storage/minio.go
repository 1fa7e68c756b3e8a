package storage

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Kartikay-0111/Placify/internal/common"
)

type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create storage client", err)
	}
	publicURL := strings.TrimSuffix(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

func (s *MinioStore) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to upload object", err)
	}
	return objectName, nil
}

func (s *MinioStore) PublicURL(objectName string) string {
	return s.publicURL + "/" + s.bucket + "/" + objectName
}
