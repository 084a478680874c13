package dto

import (
	"time"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// DownloadJobDTO 下载任务视图
type DownloadJobDTO struct {
	UUID         string    `json:"uuid"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	NotifyTarget string    `json:"notify_target,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewDownloadJobDTO 实体转视图
func NewDownloadJobDTO(e *entity.DownloadJobEntity) *DownloadJobDTO {
	return &DownloadJobDTO{
		UUID:         e.JobUUID(),
		Title:        e.Title(),
		URL:          e.URL(),
		NotifyTarget: e.NotifyTarget(),
		Status:       e.Status().String(),
		ErrorMessage: e.ErrorMessage(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
}

// VideoJobDTO 转码任务视图
type VideoJobDTO struct {
	UUID           string    `json:"uuid"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	NotTranscoding bool      `json:"not_transcoding"`
	OriginalPath   string    `json:"original_path,omitempty"`
	OriginalSize   int64     `json:"original_size"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Duration       float64   `json:"duration"`
	TranscodedPath string    `json:"transcoded_path,omitempty"`
	AfterPath      string    `json:"after_path,omitempty"`
	AfterSize      int64     `json:"after_size"`
	Screenshots    []string  `json:"screenshots,omitempty"`
	Poster         string    `json:"poster,omitempty"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	PreviewVideo   string    `json:"preview_video,omitempty"`
	M3U8Path       string    `json:"m3u8_path,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewVideoJobDTO 实体转视图
func NewVideoJobDTO(e *entity.VideoJobEntity) *VideoJobDTO {
	return &VideoJobDTO{
		UUID:           e.JobUUID(),
		Title:          e.Title(),
		Status:         e.Status().String(),
		NotTranscoding: e.NotTranscoding(),
		OriginalPath:   e.OriginalPath(),
		OriginalSize:   e.OriginalSize(),
		Width:          e.Width(),
		Height:         e.Height(),
		Duration:       e.Duration(),
		TranscodedPath: e.TranscodedPath(),
		AfterPath:      e.AfterPath(),
		AfterSize:      e.AfterSize(),
		Screenshots:    e.Screenshots(),
		Poster:         e.Poster(),
		Thumbnail:      e.Thumbnail(),
		PreviewVideo:   e.PreviewVideo(),
		M3U8Path:       e.M3U8Path(),
		ErrorMessage:   e.ErrorMessage(),
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
	}
}

// SettingsDTO 全局配置视图
type SettingsDTO struct {
	Resolution        string `json:"resolution"`
	BitrateKbps       int    `json:"bitrate_kbps"`
	FrameRate         int    `json:"frame_rate"`
	WatermarkEnabled  bool   `json:"watermark_enabled"`
	WatermarkImage    string `json:"watermark_image,omitempty"`
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

// NewSettingsDTO 配置转视图
func NewSettingsDTO(s vo.Settings) *SettingsDTO {
	return &SettingsDTO{
		Resolution:        s.Resolution.String(),
		BitrateKbps:       s.BitrateKbps,
		FrameRate:         s.FrameRate,
		WatermarkEnabled:  s.WatermarkEnabled,
		WatermarkImage:    s.WatermarkImage,
		WatermarkPosition: s.WatermarkPosition.String(),
		ScreenshotCount:   s.ScreenshotCount,
		PreviewEnabled:    s.PreviewEnabled,
		PreviewWidth:      s.PreviewWidth,
		PreviewHeight:     s.PreviewHeight,
		PosterWidth:       s.PosterWidth,
		PosterHeight:      s.PosterHeight,
		MosaicEnabled:     s.MosaicEnabled,
		HLSEnabled:        s.HLSEnabled,
	}
}

// PageDTO 分页结果
type PageDTO struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
