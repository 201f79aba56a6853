package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// ObjectInfo is one listed object of the downloads bucket.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// BucketStats summarizes the downloads bucket.
type BucketStats struct {
	ObjectCount int
	TotalSize   int64
	ZipCount    int
}

// ListBucketObjects lists objects under a prefix with summary stats.
func ListBucketObjects(bucket, prefix string) ([]ObjectInfo, *BucketStats, error) {
	if minioClient == nil {
		return nil, nil, fmt.Errorf("MinIO client not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats := &BucketStats{}
	var objects []ObjectInfo

	for object := range minioClient.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
		stats.ObjectCount++
		stats.TotalSize += object.Size
		if len(object.Key) > 4 && object.Key[len(object.Key)-4:] == ".zip" {
			stats.ZipCount++
		}
	}

	return objects, stats, nil
}

// FormatSize renders a byte count for CLI output.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
