package repo

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// ListQuery 分页查询条件
type ListQuery struct {
	Page     int
	PageSize int
	Status   string // 为空表示不过滤
	Keyword  string // 标题模糊匹配
}

// DownloadJobRepo 下载任务仓储
type DownloadJobRepo interface {
	Create(ctx context.Context, job *entity.DownloadJobEntity) error
	GetByUUID(ctx context.Context, jobUUID string) (*entity.DownloadJobEntity, error)
	// FindOldestByStatus 按创建时间取最早的一条，没有时返回nil。
	FindOldestByStatus(ctx context.Context, status vo.DownloadStatus) (*entity.DownloadJobEntity, error)
	// ClaimStatus 条件更新状态，仅当当前状态为from时生效。
	// 返回true表示本调用方赢得该任务。
	ClaimStatus(ctx context.Context, jobUUID string, from, to vo.DownloadStatus) (bool, error)
	// SetStatus 无条件写入状态与错误信息
	SetStatus(ctx context.Context, jobUUID string, status vo.DownloadStatus, errorMessage string) error
	List(ctx context.Context, query ListQuery) ([]*entity.DownloadJobEntity, int64, error)
	Delete(ctx context.Context, jobUUID string) error
}
