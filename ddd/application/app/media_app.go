package app

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/vidprocc/vidpro/ddd/application/cqe"
	"github.com/vidprocc/vidpro/ddd/application/dto"
	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/persistence"
	"github.com/vidprocc/vidpro/pkg/assert"
	"github.com/vidprocc/vidpro/pkg/errno"
	"github.com/vidprocc/vidpro/pkg/logger"
)

var (
	singleMediaApp MediaApp
	onceMediaApp   sync.Once
)

// MediaApp 媒体任务应用服务
type MediaApp interface {
	// CreateDownload 登记下载任务
	CreateDownload(ctx context.Context, req *cqe.CreateDownloadCqe) (*dto.DownloadJobDTO, error)
	// GetDownload 获取下载任务详情
	GetDownload(ctx context.Context, jobUUID string) (*dto.DownloadJobDTO, error)
	// ListDownloads 下载任务分页列表
	ListDownloads(ctx context.Context, req *cqe.ListCqe) (*dto.PageDTO, error)
	// DeleteDownload 删除下载任务记录
	DeleteDownload(ctx context.Context, jobUUID string) error

	// GetVideo 获取转码任务详情
	GetVideo(ctx context.Context, jobUUID string) (*dto.VideoJobDTO, error)
	// ListVideos 转码任务分页列表
	ListVideos(ctx context.Context, req *cqe.ListCqe) (*dto.PageDTO, error)
	// PauseVideo 暂停或恢复等待中的转码任务
	PauseVideo(ctx context.Context, jobUUID string, paused bool) error
	// DeleteVideo 删除转码任务及其产物
	DeleteVideo(ctx context.Context, jobUUID string) error

	// GetSettings 读取全局转码配置
	GetSettings(ctx context.Context) (*dto.SettingsDTO, error)
	// UpdateSettings 更新全局转码配置
	UpdateSettings(ctx context.Context, req *cqe.UpdateSettingsCqe) (*dto.SettingsDTO, error)
}

type mediaAppImpl struct {
	downloadRepo repo.DownloadJobRepo
	videoRepo    repo.VideoJobRepo
	settingRepo  repo.SettingRepo
}

// DefaultMediaApp 获取应用服务单例
func DefaultMediaApp() MediaApp {
	onceMediaApp.Do(func() {
		singleMediaApp = NewMediaAppWith(persistence.NewDownloadJobRepo(), persistence.NewVideoJobRepo(), persistence.NewSettingRepo())
	})
	assert.NotNil(singleMediaApp)
	return singleMediaApp
}

// NewMediaAppWith 注入仓储创建应用服务
func NewMediaAppWith(downloadRepo repo.DownloadJobRepo, videoRepo repo.VideoJobRepo, settingRepo repo.SettingRepo) MediaApp {
	return &mediaAppImpl{
		downloadRepo: downloadRepo,
		videoRepo:    videoRepo,
		settingRepo:  settingRepo,
	}
}

func (a *mediaAppImpl) CreateDownload(ctx context.Context, req *cqe.CreateDownloadCqe) (*dto.DownloadJobDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job := entity.NewDownloadJobEntity(uuid.NewString(), req.Title, req.URL, req.NotifyTarget)
	if err := a.downloadRepo.Create(ctx, job); err != nil {
		logger.Errorf("failed to create download job error=%v", err)
		return nil, errno.ErrDatabase
	}
	logger.Infof("download job created job_uuid=%s title=%s", job.JobUUID(), job.Title())
	return dto.NewDownloadJobDTO(job), nil
}

func (a *mediaAppImpl) GetDownload(ctx context.Context, jobUUID string) (*dto.DownloadJobDTO, error) {
	job, err := a.downloadRepo.GetByUUID(ctx, jobUUID)
	if err != nil {
		return nil, errno.ErrDatabase
	}
	if job == nil {
		return nil, errno.ErrDownloadNotFound
	}
	return dto.NewDownloadJobDTO(job), nil
}

func (a *mediaAppImpl) ListDownloads(ctx context.Context, req *cqe.ListCqe) (*dto.PageDTO, error) {
	query := normalizeQuery(req)
	jobs, total, err := a.downloadRepo.List(ctx, query)
	if err != nil {
		return nil, errno.ErrDatabase
	}
	items := make([]*dto.DownloadJobDTO, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, dto.NewDownloadJobDTO(j))
	}
	return &dto.PageDTO{Items: items, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

func (a *mediaAppImpl) DeleteDownload(ctx context.Context, jobUUID string) error {
	job, err := a.downloadRepo.GetByUUID(ctx, jobUUID)
	if err != nil {
		return errno.ErrDatabase
	}
	if job == nil {
		return errno.ErrDownloadNotFound
	}
	if err := a.downloadRepo.Delete(ctx, jobUUID); err != nil {
		return errno.ErrDatabase
	}
	logger.Infof("download job deleted job_uuid=%s", jobUUID)
	return nil
}

func (a *mediaAppImpl) GetVideo(ctx context.Context, jobUUID string) (*dto.VideoJobDTO, error) {
	job, err := a.videoRepo.GetByUUID(ctx, jobUUID)
	if err != nil {
		return nil, errno.ErrDatabase
	}
	if job == nil {
		return nil, errno.ErrVideoNotFound
	}
	return dto.NewVideoJobDTO(job), nil
}

func (a *mediaAppImpl) ListVideos(ctx context.Context, req *cqe.ListCqe) (*dto.PageDTO, error) {
	query := normalizeQuery(req)
	jobs, total, err := a.videoRepo.List(ctx, query)
	if err != nil {
		return nil, errno.ErrDatabase
	}
	items := make([]*dto.VideoJobDTO, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, dto.NewVideoJobDTO(j))
	}
	return &dto.PageDTO{Items: items, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

func (a *mediaAppImpl) PauseVideo(ctx context.Context, jobUUID string, paused bool) error {
	job, err := a.videoRepo.GetByUUID(ctx, jobUUID)
	if err != nil {
		return errno.ErrDatabase
	}
	if job == nil {
		return errno.ErrVideoNotFound
	}
	if err := a.videoRepo.SetPause(ctx, jobUUID, paused); err != nil {
		return errno.ErrDatabase
	}
	logger.Infof("video pause flag updated job_uuid=%s paused=%v", jobUUID, paused)
	return nil
}

func (a *mediaAppImpl) DeleteVideo(ctx context.Context, jobUUID string) error {
	job, err := a.videoRepo.GetByUUID(ctx, jobUUID)
	if err != nil {
		return errno.ErrDatabase
	}
	if job == nil {
		return errno.ErrVideoNotFound
	}
	// 转码中的任务不允许删除，避免产物目录被进行中的流水线复写。
	if job.Status() == vo.VideoStatusTranscoding {
		return errno.ErrVideoNotDeletable
	}

	if err := a.videoRepo.Delete(ctx, jobUUID); err != nil {
		return errno.ErrDatabase
	}
	a.removeArtifacts(job)
	logger.Infof("video job deleted job_uuid=%s", jobUUID)
	return nil
}

// removeArtifacts 尽力清理磁盘产物，失败只记日志。
func (a *mediaAppImpl) removeArtifacts(job *entity.VideoJobEntity) {
	if dir := job.TranscodedPath(); dir != "" {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warnf("failed to remove artifact dir path=%s error=%v", dir, err)
		}
	}
	if src := job.OriginalPath(); src != "" {
		if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
			logger.Warnf("failed to remove original file path=%s error=%v", src, err)
		}
	}
}

func (a *mediaAppImpl) GetSettings(ctx context.Context) (*dto.SettingsDTO, error) {
	settings, err := a.settingRepo.Load(ctx)
	if err != nil {
		return nil, errno.ErrDatabase
	}
	return dto.NewSettingsDTO(settings), nil
}

func (a *mediaAppImpl) UpdateSettings(ctx context.Context, req *cqe.UpdateSettingsCqe) (*dto.SettingsDTO, error) {
	settings, err := req.ToSettings()
	if err != nil {
		return nil, err
	}
	if err := a.settingRepo.Save(ctx, settings); err != nil {
		return nil, errno.ErrDatabase
	}
	logger.Infof("settings updated resolution=%s bitrate=%d", settings.Resolution, settings.BitrateKbps)
	return dto.NewSettingsDTO(settings), nil
}

func normalizeQuery(req *cqe.ListCqe) repo.ListQuery {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return repo.ListQuery{Page: page, PageSize: size, Status: req.Status, Keyword: req.Keyword}
}
