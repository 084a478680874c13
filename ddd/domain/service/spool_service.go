package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// SpoolService 下载编排：领取最早的待下载任务，拉取源文件，
// 成功后登记对应的转码任务。
type SpoolService interface {
	// PickupDownload 单次领取尝试，由定时触发器调用。
	// 没有空闲槽位或没有待处理任务时直接返回。
	PickupDownload(ctx context.Context)
}

type spoolServiceImpl struct {
	downloadRepo repo.DownloadJobRepo
	videoRepo    repo.VideoJobRepo
	downloader   port.Downloader
	limiter      port.SlotLimiter
	downloadDir  string
}

// NewSpoolService 创建下载编排服务
func NewSpoolService(downloadRepo repo.DownloadJobRepo, videoRepo repo.VideoJobRepo, downloader port.Downloader, limiter port.SlotLimiter, downloadDir string) SpoolService {
	return &spoolServiceImpl{
		downloadRepo: downloadRepo,
		videoRepo:    videoRepo,
		downloader:   downloader,
		limiter:      limiter,
		downloadDir:  downloadDir,
	}
}

func (s *spoolServiceImpl) PickupDownload(ctx context.Context) {
	if !s.limiter.Acquire() {
		logger.Debugf("download slots exhausted, skipping pickup")
		return
	}
	defer s.limiter.Release()

	job, err := s.downloadRepo.FindOldestByStatus(ctx, vo.DownloadStatusPending)
	if err != nil {
		logger.Errorf("failed to query pending downloads error=%v", err)
		return
	}
	if job == nil {
		return
	}

	// 条件更新抢占任务，并发触发下只有一个调用方会赢。
	claimed, err := s.downloadRepo.ClaimStatus(ctx, job.JobUUID(), vo.DownloadStatusPending, vo.DownloadStatusDownloading)
	if err != nil {
		logger.Errorf("failed to claim download job_uuid=%s error=%v", job.JobUUID(), err)
		return
	}
	if !claimed {
		return
	}

	logger.Infof("download started job_uuid=%s url=%s", job.JobUUID(), job.URL())
	s.runDownload(ctx, job)
}

func (s *spoolServiceImpl) runDownload(ctx context.Context, job *entity.DownloadJobEntity) {
	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		s.fail(ctx, job, "", fmt.Errorf("create download dir: %w", err))
		return
	}
	dest := filepath.Join(s.downloadDir, job.JobUUID()+".mp4")

	if err := s.downloader.Fetch(ctx, job.URL(), dest, "mp4"); err != nil {
		s.fail(ctx, job, dest, err)
		return
	}

	info, err := os.Stat(dest)
	if err != nil {
		s.fail(ctx, job, dest, fmt.Errorf("file not found after download"))
		return
	}
	if info.Size() == 0 {
		s.fail(ctx, job, dest, fmt.Errorf("downloaded file is empty"))
		return
	}

	if err := s.downloadRepo.SetStatus(ctx, job.JobUUID(), vo.DownloadStatusCompleted, ""); err != nil {
		logger.Errorf("failed to mark download completed job_uuid=%s error=%v", job.JobUUID(), err)
	}

	video := entity.NewVideoJobEntity(job.JobUUID(), job.Title(), dest, info.Size(), job.NotifyTarget())
	if err := s.videoRepo.Create(ctx, video); err != nil {
		logger.Errorf("failed to enqueue video job job_uuid=%s error=%v", job.JobUUID(), err)
		return
	}
	logger.Infof("download completed job_uuid=%s size=%d", job.JobUUID(), info.Size())
}

// fail 记录失败并清理半成品文件
func (s *spoolServiceImpl) fail(ctx context.Context, job *entity.DownloadJobEntity, dest string, cause error) {
	logger.Errorf("download failed job_uuid=%s error=%v", job.JobUUID(), cause)
	if err := s.downloadRepo.SetStatus(ctx, job.JobUUID(), vo.DownloadStatusError, cause.Error()); err != nil {
		logger.Errorf("failed to mark download error job_uuid=%s error=%v", job.JobUUID(), err)
	}
	if dest != "" {
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			logger.Warnf("failed to remove partial download path=%s error=%v", dest, err)
		}
	}
}
