package vo

import (
	"fmt"
	"math"
)

// Resolution 输出分辨率档位
type Resolution string

const (
	Resolution480p  Resolution = "480p"
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
	Resolution4K    Resolution = "4K"
)

// Dimensions 档位对应的像素尺寸
type Dimensions struct {
	Width  int
	Height int
}

var resolutionDimensions = map[Resolution]Dimensions{
	Resolution480p:  {Width: 640, Height: 480},
	Resolution720p:  {Width: 1280, Height: 720},
	Resolution1080p: {Width: 1920, Height: 1080},
	Resolution4K:    {Width: 3840, Height: 2160},
}

// IsValid 检查档位是否有效
func (r Resolution) IsValid() bool {
	_, ok := resolutionDimensions[r]
	return ok
}

// Dimensions 返回档位尺寸；无效档位回退到1080p。
func (r Resolution) Dimensions() Dimensions {
	if d, ok := resolutionDimensions[r]; ok {
		return d
	}
	return resolutionDimensions[Resolution1080p]
}

func (r Resolution) String() string { return string(r) }

// WatermarkPosition 水印贴角位置
type WatermarkPosition string

const (
	WatermarkTopLeft     WatermarkPosition = "top-left"
	WatermarkTopRight    WatermarkPosition = "top-right"
	WatermarkBottomLeft  WatermarkPosition = "bottom-left"
	WatermarkBottomRight WatermarkPosition = "bottom-right"
)

// 四个贴角的overlay坐标，距边缘固定10px。
var watermarkOverlays = map[WatermarkPosition]string{
	WatermarkTopLeft:     "10:10",
	WatermarkTopRight:    "main_w-overlay_w-10:10",
	WatermarkBottomLeft:  "10:main_h-overlay_h-10",
	WatermarkBottomRight: "main_w-overlay_w-10:main_h-overlay_h-10",
}

// IsValid 检查位置是否有效
func (p WatermarkPosition) IsValid() bool {
	_, ok := watermarkOverlays[p]
	return ok
}

// OverlayExpr 返回位置对应的overlay坐标表达式；无效位置回退到右下角。
func (p WatermarkPosition) OverlayExpr() string {
	if expr, ok := watermarkOverlays[p]; ok {
		return expr
	}
	return watermarkOverlays[WatermarkBottomRight]
}

func (p WatermarkPosition) String() string { return string(p) }

// Settings 一次转码流水线使用的完整配置快照。
// 任务领取时取当前值，之后的修改不影响已开始的任务。
type Settings struct {
	Resolution        Resolution
	BitrateKbps       int
	FrameRate         int
	WatermarkEnabled  bool
	WatermarkImage    string
	WatermarkPosition WatermarkPosition
	ScreenshotCount   int
	PreviewEnabled    bool
	PreviewWidth      int
	PreviewHeight     int
	PosterWidth       int
	PosterHeight      int
	MosaicEnabled     bool
	HLSEnabled        bool
}

// DefaultSettings 返回出厂配置
func DefaultSettings() Settings {
	return Settings{
		Resolution:        Resolution1080p,
		BitrateKbps:       2500,
		FrameRate:         30,
		WatermarkEnabled:  false,
		WatermarkPosition: WatermarkBottomRight,
		ScreenshotCount:   10,
		PreviewEnabled:    true,
		PreviewWidth:      640,
		PreviewHeight:     360,
		PosterWidth:       640,
		PosterHeight:      0,
		MosaicEnabled:     true,
		HLSEnabled:        false,
	}
}

// Validate 校验配置字段
func (s Settings) Validate() error {
	if !s.Resolution.IsValid() {
		return fmt.Errorf("invalid resolution: %s", s.Resolution)
	}
	if s.BitrateKbps <= 0 {
		return fmt.Errorf("bitrate must be positive, got %d", s.BitrateKbps)
	}
	if s.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", s.FrameRate)
	}
	if s.ScreenshotCount <= 0 {
		return fmt.Errorf("screenshot count must be positive, got %d", s.ScreenshotCount)
	}
	if s.WatermarkEnabled {
		if s.WatermarkImage == "" {
			return fmt.Errorf("watermark image is required when watermark is enabled")
		}
		if !s.WatermarkPosition.IsValid() {
			return fmt.Errorf("invalid watermark position: %s", s.WatermarkPosition)
		}
	}
	return nil
}

// TargetDimensions 返回输出档位尺寸
func (s Settings) TargetDimensions() Dimensions {
	return s.Resolution.Dimensions()
}

// ScaleExpr 返回主转码的缩放表达式。横屏按目标宽度缩放，
// 竖屏按目标宽度作为高度缩放，另一边取-2保持比例（偶数对齐）。
func (s Settings) ScaleExpr(portrait bool) string {
	w := s.TargetDimensions().Width
	if portrait {
		return fmt.Sprintf("-2:%d", w)
	}
	return fmt.Sprintf("%d:-2", w)
}

// WatermarkScaleWidth 水印缩放后的宽度。以1080p档位为基准等比缩放，
// 基准下水印固定100px宽。
func (s Settings) WatermarkScaleWidth() int {
	factor := float64(s.TargetDimensions().Width) / float64(Resolution1080p.Dimensions().Width)
	return int(math.Round(100 * factor))
}
