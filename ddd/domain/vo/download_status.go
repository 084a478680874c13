package vo

// DownloadStatus 下载任务状态
type DownloadStatus string

const (
	// DownloadStatusPending 待下载
	DownloadStatusPending DownloadStatus = "pending"
	// DownloadStatusDownloading 下载中
	DownloadStatusDownloading DownloadStatus = "downloading"
	// DownloadStatusCompleted 已完成
	DownloadStatusCompleted DownloadStatus = "completed"
	// DownloadStatusError 失败
	DownloadStatusError DownloadStatus = "error"
)

// IsValid 检查状态是否有效
func (s DownloadStatus) IsValid() bool {
	switch s {
	case DownloadStatusPending, DownloadStatusDownloading, DownloadStatusCompleted, DownloadStatusError:
		return true
	default:
		return false
	}
}

// String 返回状态字符串
func (s DownloadStatus) String() string {
	return string(s)
}

// IsFinalStatus 检查是否为最终状态
func (s DownloadStatus) IsFinalStatus() bool {
	return s == DownloadStatusCompleted || s == DownloadStatusError
}

// CanTransitionTo 检查是否可以转换到目标状态
func (s DownloadStatus) CanTransitionTo(target DownloadStatus) bool {
	switch s {
	case DownloadStatusPending:
		return target == DownloadStatusDownloading
	case DownloadStatusDownloading:
		return target == DownloadStatusCompleted || target == DownloadStatusError
	case DownloadStatusCompleted, DownloadStatusError:
		return false // 最终状态不能转换
	default:
		return false
	}
}
