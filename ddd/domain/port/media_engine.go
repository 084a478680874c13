package port

import "context"

// WatermarkOverlay 主转码时叠加的水印
type WatermarkOverlay struct {
	ImagePath  string
	ScaleWidth int    // 水印缩放后的宽度，高度保持比例
	Position   string // overlay坐标表达式
}

// TranscodeSpec 主转码参数
type TranscodeSpec struct {
	Input       string
	Output      string
	ScaleExpr   string // 如 "1280:-2"
	BitrateKbps int
	FrameRate   int
	Watermark   *WatermarkOverlay
}

// ClipSpec 截取一段并缩放补边
type ClipSpec struct {
	Input    string
	Output   string
	Start    float64
	Duration float64
	Width    int // 0表示按比例
	Height   int // 0表示按比例
}

// HLSSpec 流拷贝切片参数
type HLSSpec struct {
	Input          string
	PlaylistPath   string
	SegmentPattern string
	KeyInfoPath    string
	SegmentSeconds int
	// IncludeAudio 源无音频流时不能映射音轨，否则切片直接失败
	IncludeAudio bool
}

// MediaEngine 视频处理端口，对应外部转码工具的各类调用。
type MediaEngine interface {
	// Transcode 执行主转码
	Transcode(ctx context.Context, spec TranscodeSpec) error
	// ExtractFrame 在指定时间点抽取单帧
	ExtractFrame(ctx context.Context, input string, seekSeconds float64, output string) error
	// Clip 截取片段并缩放补边
	Clip(ctx context.Context, spec ClipSpec) error
	// ConcatCopy 无重编码拼接多个片段
	ConcatCopy(ctx context.Context, inputs []string, output string) error
	// SegmentHLS 流拷贝切片并加密
	SegmentHLS(ctx context.Context, spec HLSSpec) error
}
