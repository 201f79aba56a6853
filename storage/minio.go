package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"SqueezeFM/config"
	"SqueezeFM/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var minioClient *minio.Client

// InitMinio initializes the MinIO client and ensures the downloads bucket
// exists.
func InitMinio(cfg *config.Config) error {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{
			Region: cfg.MinioRegion,
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("Created downloads bucket", logger.String("bucket", cfg.MinioBucket))
	}

	minioClient = client
	logger.Info("MinIO client initialized", logger.String("endpoint", cfg.MinioEndpoint), logger.String("bucket", cfg.MinioBucket))
	return nil
}

// GetMinioClient returns the MinIO client instance.
func GetMinioClient() *minio.Client {
	return minioClient
}

// PresignDownloadURL issues a time-limited download URL for an object in the
// downloads bucket, with a content-disposition forcing the given filename.
func PresignDownloadURL(ctx context.Context, bucket, objectKey, fileName string, expiry time.Duration) (string, error) {
	if minioClient == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))

	u, err := minioClient.PresignedGetObject(ctx, bucket, objectKey, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to presign download URL for %s: %w", objectKey, err)
	}
	return u.String(), nil
}

// DownloadFilename derives the local save name for a track download. Bundled
// downloads are zip archives; everything else is a bare audio file.
func DownloadFilename(title, objectKey string) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = "track"
	}
	base = strings.ReplaceAll(base, "/", "-")
	if strings.HasSuffix(strings.ToLower(objectKey), ".zip") {
		return base + ".zip"
	}
	return base + ".mp3"
}
