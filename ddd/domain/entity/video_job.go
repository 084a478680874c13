package entity

import (
	"time"

	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// VideoJobEntity 转码任务及其产物记录
type VideoJobEntity struct {
	id             uint64
	jobUUID        string
	title          string
	status         vo.VideoStatus
	notTranscoding bool
	originalPath   string
	originalSize   int64
	width          int
	height         int
	duration       float64
	metadata       string
	transcodedPath string
	afterPath      string
	afterSize      int64
	screenshots    []string
	poster         string
	thumbnail      string
	previewVideo   string
	m3u8Path       string
	errorMessage   string
	notifyTarget   string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewVideoJobEntity 下载完成后创建的待转码任务
func NewVideoJobEntity(jobUUID, title, originalPath string, originalSize int64, notifyTarget string) *VideoJobEntity {
	now := time.Now()
	return &VideoJobEntity{
		jobUUID:      jobUUID,
		title:        title,
		status:       vo.VideoStatusWaiting,
		originalPath: originalPath,
		originalSize: originalSize,
		notifyTarget: notifyTarget,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (e *VideoJobEntity) ID() uint64             { return e.id }
func (e *VideoJobEntity) JobUUID() string        { return e.jobUUID }
func (e *VideoJobEntity) Title() string          { return e.title }
func (e *VideoJobEntity) Status() vo.VideoStatus { return e.status }
func (e *VideoJobEntity) NotTranscoding() bool   { return e.notTranscoding }
func (e *VideoJobEntity) OriginalPath() string   { return e.originalPath }
func (e *VideoJobEntity) OriginalSize() int64    { return e.originalSize }
func (e *VideoJobEntity) Width() int             { return e.width }
func (e *VideoJobEntity) Height() int            { return e.height }
func (e *VideoJobEntity) Duration() float64      { return e.duration }
func (e *VideoJobEntity) Metadata() string       { return e.metadata }
func (e *VideoJobEntity) TranscodedPath() string { return e.transcodedPath }
func (e *VideoJobEntity) AfterPath() string      { return e.afterPath }
func (e *VideoJobEntity) AfterSize() int64       { return e.afterSize }
func (e *VideoJobEntity) Screenshots() []string  { return e.screenshots }
func (e *VideoJobEntity) Poster() string         { return e.poster }
func (e *VideoJobEntity) Thumbnail() string      { return e.thumbnail }
func (e *VideoJobEntity) PreviewVideo() string   { return e.previewVideo }
func (e *VideoJobEntity) M3U8Path() string       { return e.m3u8Path }
func (e *VideoJobEntity) ErrorMessage() string   { return e.errorMessage }
func (e *VideoJobEntity) NotifyTarget() string   { return e.notifyTarget }
func (e *VideoJobEntity) CreatedAt() time.Time   { return e.createdAt }
func (e *VideoJobEntity) UpdatedAt() time.Time   { return e.updatedAt }

// HasSubscriber 是否需要发送完成通知
func (e *VideoJobEntity) HasSubscriber() bool { return e.notifyTarget != "" }

// IsDeletable 只有到达最终状态的任务允许删除
func (e *VideoJobEntity) IsDeletable() bool { return e.status.IsFinalStatus() }

func (e *VideoJobEntity) SetID(id uint64) { e.id = id }

func (e *VideoJobEntity) SetStatus(status vo.VideoStatus) {
	e.status = status
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetPause(paused bool) {
	e.notTranscoding = paused
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetMetadata(width, height int, duration float64, raw string) {
	e.width = width
	e.height = height
	e.duration = duration
	e.metadata = raw
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetTranscodedPath(dir string) {
	e.transcodedPath = dir
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetScreenshotArtifacts(screenshots []string, poster, thumbnail string) {
	e.screenshots = screenshots
	e.poster = poster
	e.thumbnail = thumbnail
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetPreviewVideo(path string) {
	e.previewVideo = path
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetM3U8Path(path string) {
	e.m3u8Path = path
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetResult(afterPath string, afterSize int64) {
	e.afterPath = afterPath
	e.afterSize = afterSize
	e.status = vo.VideoStatusFinished
	e.updatedAt = time.Now()
}

func (e *VideoJobEntity) SetError(msg string) {
	e.status = vo.VideoStatusError
	e.errorMessage = msg
	e.updatedAt = time.Now()
}

// Rebuild系列在convertor中使用，避免导出全部字段。
func (e *VideoJobEntity) Rebuild(id uint64, status vo.VideoStatus, notTranscoding bool, createdAt, updatedAt time.Time) {
	e.id = id
	e.status = status
	e.notTranscoding = notTranscoding
	e.createdAt = createdAt
	e.updatedAt = updatedAt
}

func (e *VideoJobEntity) RebuildMedia(width, height int, duration float64, metadata string) {
	e.width = width
	e.height = height
	e.duration = duration
	e.metadata = metadata
}

func (e *VideoJobEntity) RebuildArtifacts(transcodedPath, afterPath string, afterSize int64, screenshots []string, poster, thumbnail, previewVideo, m3u8Path, errorMessage string) {
	e.transcodedPath = transcodedPath
	e.afterPath = afterPath
	e.afterSize = afterSize
	e.screenshots = screenshots
	e.poster = poster
	e.thumbnail = thumbnail
	e.previewVideo = previewVideo
	e.m3u8Path = m3u8Path
	e.errorMessage = errorMessage
}
