package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vidprocc/vidpro/ddd/infrastructure/database/po"
	"github.com/vidprocc/vidpro/internal/resource"
)

type SettingDAO struct {
	db *gorm.DB
}

func NewSettingDAO() *SettingDAO {
	return &SettingDAO{db: resource.DefaultMysqlResource().MainDB()}
}

// First 取首条配置记录，不存在时返回nil。
func (d *SettingDAO) First(ctx context.Context) (*po.Setting, error) {
	var setting po.Setting
	if err := d.db.WithContext(ctx).Order("id ASC").First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (d *SettingDAO) Create(ctx context.Context, setting *po.Setting) error {
	return d.db.WithContext(ctx).Create(setting).Error
}

func (d *SettingDAO) Update(ctx context.Context, setting *po.Setting) error {
	return d.db.WithContext(ctx).
		Model(&po.Setting{}).
		Where("id = ?", setting.Id).
		Updates(map[string]interface{}{
			"resolution":         setting.Resolution,
			"bitrate_kbps":       setting.BitrateKbps,
			"frame_rate":         setting.FrameRate,
			"watermark_enabled":  setting.WatermarkEnabled,
			"watermark_image":    setting.WatermarkImage,
			"watermark_position": setting.WatermarkPosition,
			"screenshot_count":   setting.ScreenshotCount,
			"preview_enabled":    setting.PreviewEnabled,
			"preview_width":      setting.PreviewWidth,
			"preview_height":     setting.PreviewHeight,
			"poster_width":       setting.PosterWidth,
			"poster_height":      setting.PosterHeight,
			"mosaic_enabled":     setting.MosaicEnabled,
			"hls_enabled":        setting.HLSEnabled,
		}).Error
}
