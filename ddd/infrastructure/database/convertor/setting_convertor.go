package convertor

import (
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/po"
)

type SettingConvertor struct{}

func NewSettingConvertor() *SettingConvertor { return &SettingConvertor{} }

func (c *SettingConvertor) ToSettings(poSetting *po.Setting) vo.Settings {
	return vo.Settings{
		Resolution:        vo.Resolution(poSetting.Resolution),
		BitrateKbps:       poSetting.BitrateKbps,
		FrameRate:         poSetting.FrameRate,
		WatermarkEnabled:  poSetting.WatermarkEnabled,
		WatermarkImage:    poSetting.WatermarkImage,
		WatermarkPosition: vo.WatermarkPosition(poSetting.WatermarkPosition),
		ScreenshotCount:   poSetting.ScreenshotCount,
		PreviewEnabled:    poSetting.PreviewEnabled,
		PreviewWidth:      poSetting.PreviewWidth,
		PreviewHeight:     poSetting.PreviewHeight,
		PosterWidth:       poSetting.PosterWidth,
		PosterHeight:      poSetting.PosterHeight,
		MosaicEnabled:     poSetting.MosaicEnabled,
		HLSEnabled:        poSetting.HLSEnabled,
	}
}

func (c *SettingConvertor) ToPO(settings vo.Settings) *po.Setting {
	return &po.Setting{
		Resolution:        settings.Resolution.String(),
		BitrateKbps:       settings.BitrateKbps,
		FrameRate:         settings.FrameRate,
		WatermarkEnabled:  settings.WatermarkEnabled,
		WatermarkImage:    settings.WatermarkImage,
		WatermarkPosition: settings.WatermarkPosition.String(),
		ScreenshotCount:   settings.ScreenshotCount,
		PreviewEnabled:    settings.PreviewEnabled,
		PreviewWidth:      settings.PreviewWidth,
		PreviewHeight:     settings.PreviewHeight,
		PosterWidth:       settings.PosterWidth,
		PosterHeight:      settings.PosterHeight,
		MosaicEnabled:     settings.MosaicEnabled,
		HLSEnabled:        settings.HLSEnabled,
	}
}
