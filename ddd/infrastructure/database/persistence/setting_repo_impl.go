package persistence

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/convertor"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/dao"
	"github.com/vidprocc/vidpro/pkg/logger"
)

type settingRepoImpl struct {
	dao *dao.SettingDAO
	cvt *convertor.SettingConvertor
}

func NewSettingRepo() repo.SettingRepo {
	return &settingRepoImpl{dao: dao.NewSettingDAO(), cvt: convertor.NewSettingConvertor()}
}

// Load 读取配置快照，无记录时回退到出厂配置。
func (r *settingRepoImpl) Load(ctx context.Context) (vo.Settings, error) {
	poSetting, err := r.dao.First(ctx)
	if err != nil {
		return vo.Settings{}, err
	}
	if poSetting == nil {
		return vo.DefaultSettings(), nil
	}
	return r.cvt.ToSettings(poSetting), nil
}

func (r *settingRepoImpl) Save(ctx context.Context, settings vo.Settings) error {
	existing, err := r.dao.First(ctx)
	if err != nil {
		return err
	}
	poSetting := r.cvt.ToPO(settings)
	if existing == nil {
		return r.dao.Create(ctx, poSetting)
	}
	poSetting.Id = existing.Id
	return r.dao.Update(ctx, poSetting)
}

func (r *settingRepoImpl) EnsureDefaults(ctx context.Context) error {
	existing, err := r.dao.First(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	logger.Infof("seeding default transcode settings")
	return r.dao.Create(ctx, r.cvt.ToPO(vo.DefaultSettings()))
}
