package repo

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// SettingRepo 全局转码配置仓储。Load返回的是快照，
// 任务执行期间的配置修改只影响后续任务。
type SettingRepo interface {
	Load(ctx context.Context) (vo.Settings, error)
	Save(ctx context.Context, settings vo.Settings) error
	// EnsureDefaults 首次启动时写入出厂配置
	EnsureDefaults(ctx context.Context) error
}
