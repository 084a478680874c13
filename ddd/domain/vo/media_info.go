package vo

import (
	"strconv"
	"strings"
)

// StreamInfo 探测到的单条流信息
type StreamInfo struct {
	CodecType  string
	CodecName  string
	Width      int
	Height     int
	Duration   float64
	RFrameRate string
	NbFrames   int64
}

// FrameRate 解析"num/den"形式的帧率，解析失败返回0。
func (s StreamInfo) FrameRate() float64 {
	rate := strings.TrimSpace(s.RFrameRate)
	if rate == "" {
		return 0
	}
	parts := strings.SplitN(rate, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || num <= 0 {
		return 0
	}
	if len(parts) == 1 {
		return num
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den <= 0 {
		return 0
	}
	return num / den
}

// IsPortrait 高大于宽视为竖屏
func (s StreamInfo) IsPortrait() bool {
	return s.Width > 0 && s.Height > 0 && s.Height > s.Width
}

// MediaInfo 一次探测的结果。Raw保留探测器的原始JSON输出。
type MediaInfo struct {
	Duration float64
	Streams  []StreamInfo
	Raw      string
}

// VideoStream 返回第一条视频流，不存在时返回nil。
func (m *MediaInfo) VideoStream() *StreamInfo {
	for i := range m.Streams {
		if m.Streams[i].CodecType == "video" {
			return &m.Streams[i]
		}
	}
	return nil
}

// HasAudio 是否包含音频流
func (m *MediaInfo) HasAudio() bool {
	for i := range m.Streams {
		if m.Streams[i].CodecType == "audio" {
			return true
		}
	}
	return false
}
