package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/vidprocc/vidpro/ddd/domain/gateway"
	"github.com/vidprocc/vidpro/internal/resource"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// MinioArtifactStore 成品镜像的MinIO实现
type MinioArtifactStore struct {
	minioResource *resource.MinioResource
}

// NewMinioArtifactStore 创建对象存储网关
func NewMinioArtifactStore(minioResource *resource.MinioResource) gateway.ArtifactStore {
	return &MinioArtifactStore{minioResource: minioResource}
}

// Mirror 上传本地产物，返回对象键。
func (s *MinioArtifactStore) Mirror(ctx context.Context, localPath, objectKey, contentType string) (string, error) {
	client := s.minioResource.Client()
	bucketName := s.minioResource.BucketName()

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open local file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("get file info: %w", err)
	}

	if contentType == "" {
		contentType = contentTypeFromExtension(objectKey)
	}

	_, err = client.PutObject(ctx, bucketName, objectKey, file, fileInfo.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload to minio: %w", err)
	}

	logger.Info("Artifact mirrored to object storage", map[string]interface{}{
		"local_path": localPath,
		"object_key": objectKey,
		"size":       fileInfo.Size(),
	})
	return objectKey, nil
}

func contentTypeFromExtension(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".mp4":
		return "video/mp4"
	case ".m3u8":
		return "application/vnd.apple.mpegurl"
	case ".ts":
		return "video/mp2t"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
