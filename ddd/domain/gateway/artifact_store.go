package gateway

import "context"

// ArtifactStore 成品对象存储网关，用于可选的产物镜像。
type ArtifactStore interface {
	// Mirror 上传本地产物，返回对象键。
	Mirror(ctx context.Context, localPath, objectKey, contentType string) (string, error)
}
