package repo

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// VideoJobRepo 转码任务仓储
type VideoJobRepo interface {
	Create(ctx context.Context, job *entity.VideoJobEntity) error
	GetByUUID(ctx context.Context, jobUUID string) (*entity.VideoJobEntity, error)
	// FindOldestWaiting 按创建时间取最早的等待任务，跳过被暂停的记录；没有时返回nil。
	FindOldestWaiting(ctx context.Context) (*entity.VideoJobEntity, error)
	// ClaimStatus 条件更新状态，仅当当前状态为from时生效。
	ClaimStatus(ctx context.Context, jobUUID string, from, to vo.VideoStatus) (bool, error)
	// SaveMetadata 写入探测到的媒体信息
	SaveMetadata(ctx context.Context, jobUUID string, width, height int, duration float64, raw string) error
	SetTranscodedPath(ctx context.Context, jobUUID, dir string) error
	SetScreenshotArtifacts(ctx context.Context, jobUUID string, screenshots []string, poster, thumbnail string) error
	SetPreviewVideo(ctx context.Context, jobUUID, path string) error
	SetM3U8Path(ctx context.Context, jobUUID, path string) error
	// MarkFinished 写入成品路径与大小并置为finished
	MarkFinished(ctx context.Context, jobUUID, afterPath string, afterSize int64) error
	// MarkError 置为error并记录原因
	MarkError(ctx context.Context, jobUUID, message string) error
	SetPause(ctx context.Context, jobUUID string, paused bool) error
	List(ctx context.Context, query ListQuery) ([]*entity.VideoJobEntity, int64, error)
	Delete(ctx context.Context, jobUUID string) error
}
