package vo

// VideoStatus 转码任务状态
type VideoStatus string

const (
	// VideoStatusWaiting 等待转码
	VideoStatusWaiting VideoStatus = "waiting"
	// VideoStatusTranscoding 转码中
	VideoStatusTranscoding VideoStatus = "transcoding"
	// VideoStatusFinished 已完成
	VideoStatusFinished VideoStatus = "finished"
	// VideoStatusError 失败
	VideoStatusError VideoStatus = "error"
)

// IsValid 检查状态是否有效
func (s VideoStatus) IsValid() bool {
	switch s {
	case VideoStatusWaiting, VideoStatusTranscoding, VideoStatusFinished, VideoStatusError:
		return true
	default:
		return false
	}
}

// String 返回状态字符串
func (s VideoStatus) String() string {
	return string(s)
}

// IsFinalStatus 检查是否为最终状态
func (s VideoStatus) IsFinalStatus() bool {
	return s == VideoStatusFinished || s == VideoStatusError
}

// CanTransitionTo 检查是否可以转换到目标状态
func (s VideoStatus) CanTransitionTo(target VideoStatus) bool {
	switch s {
	case VideoStatusWaiting:
		return target == VideoStatusTranscoding
	case VideoStatusTranscoding:
		return target == VideoStatusFinished || target == VideoStatusError
	case VideoStatusFinished, VideoStatusError:
		return false // 最终状态不能转换
	default:
		return false
	}
}
