package entity

import (
	"time"

	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// DownloadJobEntity 排队的下载任务
type DownloadJobEntity struct {
	id           uint64
	jobUUID      string
	title        string
	url          string
	notifyTarget string
	status       vo.DownloadStatus
	errorMessage string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewDownloadJobEntity 创建待下载任务
func NewDownloadJobEntity(jobUUID, title, url, notifyTarget string) *DownloadJobEntity {
	now := time.Now()
	return &DownloadJobEntity{
		jobUUID:      jobUUID,
		title:        title,
		url:          url,
		notifyTarget: notifyTarget,
		status:       vo.DownloadStatusPending,
		createdAt:    now,
		updatedAt:    now,
	}
}

// RebuildDownloadJobEntity 从持久化记录还原实体
func RebuildDownloadJobEntity(id uint64, jobUUID, title, url, notifyTarget string, status vo.DownloadStatus, errorMessage string, createdAt, updatedAt time.Time) *DownloadJobEntity {
	return &DownloadJobEntity{
		id:           id,
		jobUUID:      jobUUID,
		title:        title,
		url:          url,
		notifyTarget: notifyTarget,
		status:       status,
		errorMessage: errorMessage,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (e *DownloadJobEntity) ID() uint64                 { return e.id }
func (e *DownloadJobEntity) JobUUID() string            { return e.jobUUID }
func (e *DownloadJobEntity) Title() string              { return e.title }
func (e *DownloadJobEntity) URL() string                { return e.url }
func (e *DownloadJobEntity) NotifyTarget() string       { return e.notifyTarget }
func (e *DownloadJobEntity) Status() vo.DownloadStatus  { return e.status }
func (e *DownloadJobEntity) ErrorMessage() string       { return e.errorMessage }
func (e *DownloadJobEntity) CreatedAt() time.Time       { return e.createdAt }
func (e *DownloadJobEntity) UpdatedAt() time.Time       { return e.updatedAt }

// HasSubscriber 是否需要发送完成通知
func (e *DownloadJobEntity) HasSubscriber() bool { return e.notifyTarget != "" }

func (e *DownloadJobEntity) SetStatus(status vo.DownloadStatus) {
	e.status = status
	e.updatedAt = time.Now()
}

func (e *DownloadJobEntity) SetError(msg string) {
	e.status = vo.DownloadStatusError
	e.errorMessage = msg
	e.updatedAt = time.Now()
}
