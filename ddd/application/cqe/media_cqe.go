package cqe

import (
	"net/url"
	"strings"

	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/pkg/errno"
)

// CreateDownloadCqe 创建下载任务请求
type CreateDownloadCqe struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	NotifyTarget string `json:"notify_target"`
}

// Validate 校验请求参数
func (c *CreateDownloadCqe) Validate() error {
	c.Title = strings.TrimSpace(c.Title)
	c.URL = strings.TrimSpace(c.URL)
	if c.Title == "" {
		return errno.ErrTitleRequired
	}
	if c.URL == "" {
		return errno.ErrURLRequired
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errno.ErrURLInvalid
	}
	return nil
}

// ListCqe 分页查询请求
type ListCqe struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Keyword  string `form:"keyword"`
}

// PauseVideoCqe 暂停/恢复转码请求
type PauseVideoCqe struct {
	Paused bool `json:"paused"`
}

// UpdateSettingsCqe 更新全局转码配置请求
type UpdateSettingsCqe struct {
	Resolution        string `json:"resolution"`
	BitrateKbps       int    `json:"bitrate_kbps"`
	FrameRate         int    `json:"frame_rate"`
	WatermarkEnabled  bool   `json:"watermark_enabled"`
	WatermarkImage    string `json:"watermark_image"`
	WatermarkPosition string `json:"watermark_position"`
	ScreenshotCount   int    `json:"screenshot_count"`
	PreviewEnabled    bool   `json:"preview_enabled"`
	PreviewWidth      int    `json:"preview_width"`
	PreviewHeight     int    `json:"preview_height"`
	PosterWidth       int    `json:"poster_width"`
	PosterHeight      int    `json:"poster_height"`
	MosaicEnabled     bool   `json:"mosaic_enabled"`
	HLSEnabled        bool   `json:"hls_enabled"`
}

// ToSettings 转为领域配置并校验
func (c *UpdateSettingsCqe) ToSettings() (vo.Settings, error) {
	settings := vo.Settings{
		Resolution:        vo.Resolution(c.Resolution),
		BitrateKbps:       c.BitrateKbps,
		FrameRate:         c.FrameRate,
		WatermarkEnabled:  c.WatermarkEnabled,
		WatermarkImage:    c.WatermarkImage,
		WatermarkPosition: vo.WatermarkPosition(c.WatermarkPosition),
		ScreenshotCount:   c.ScreenshotCount,
		PreviewEnabled:    c.PreviewEnabled,
		PreviewWidth:      c.PreviewWidth,
		PreviewHeight:     c.PreviewHeight,
		PosterWidth:       c.PosterWidth,
		PosterHeight:      c.PosterHeight,
		MosaicEnabled:     c.MosaicEnabled,
		HLSEnabled:        c.HLSEnabled,
	}
	if err := settings.Validate(); err != nil {
		return vo.Settings{}, errno.ErrSettingsInvalid
	}
	return settings, nil
}
