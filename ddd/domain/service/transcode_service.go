package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/gateway"
	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// TranscodeService 转码编排：领取最早的等待任务，按当时的配置快照
// 依次生成截图、预览、成品和可选的HLS切片，最后清理源文件并通知。
type TranscodeService interface {
	// PickupTranscode 单次领取尝试，由定时触发器调用。
	PickupTranscode(ctx context.Context)
}

type transcodeServiceImpl struct {
	videoRepo   repo.VideoJobRepo
	settingRepo repo.SettingRepo
	prober      port.Prober
	media       port.MediaEngine
	screenshots ScreenshotService
	preview     PreviewService
	hls         HLSService
	notifier    gateway.Notifier
	store       gateway.ArtifactStore // 可选，nil表示不镜像
	outputDir   string
}

// NewTranscodeService 创建转码编排服务
func NewTranscodeService(
	videoRepo repo.VideoJobRepo,
	settingRepo repo.SettingRepo,
	prober port.Prober,
	media port.MediaEngine,
	screenshots ScreenshotService,
	preview PreviewService,
	hls HLSService,
	notifier gateway.Notifier,
	store gateway.ArtifactStore,
	outputDir string,
) TranscodeService {
	return &transcodeServiceImpl{
		videoRepo:   videoRepo,
		settingRepo: settingRepo,
		prober:      prober,
		media:       media,
		screenshots: screenshots,
		preview:     preview,
		hls:         hls,
		notifier:    notifier,
		store:       store,
		outputDir:   outputDir,
	}
}

func (s *transcodeServiceImpl) PickupTranscode(ctx context.Context) {
	job, err := s.videoRepo.FindOldestWaiting(ctx)
	if err != nil {
		logger.Errorf("failed to query waiting videos error=%v", err)
		return
	}
	if job == nil {
		return
	}

	// 配置快照在领取时读取，任务执行期间的修改不生效。
	settings, err := s.settingRepo.Load(ctx)
	if err != nil {
		logger.Errorf("failed to load settings error=%v", err)
		return
	}

	claimed, err := s.videoRepo.ClaimStatus(ctx, job.JobUUID(), vo.VideoStatusWaiting, vo.VideoStatusTranscoding)
	if err != nil {
		logger.Errorf("failed to claim video job_uuid=%s error=%v", job.JobUUID(), err)
		return
	}
	if !claimed {
		return
	}

	logger.Infof("transcode started job_uuid=%s resolution=%s", job.JobUUID(), settings.Resolution)
	s.runPipeline(ctx, job, settings)
}

func (s *transcodeServiceImpl) runPipeline(ctx context.Context, job *entity.VideoJobEntity, settings vo.Settings) {
	source := job.OriginalPath()

	info, err := s.prober.Probe(ctx, source)
	if err != nil || info.VideoStream() == nil {
		logger.Errorf("probe failed job_uuid=%s path=%s error=%v", job.JobUUID(), source, err)
		s.markError(ctx, job.JobUUID(), "Not a valid video")
		return
	}
	stream := info.VideoStream()

	portrait := stream.IsPortrait()
	if stream.Width == 0 || stream.Height == 0 {
		logger.Warnf("missing dimensions, assuming landscape job_uuid=%s", job.JobUUID())
	}

	// 元数据写失败不阻断流水线
	if err := s.videoRepo.SaveMetadata(ctx, job.JobUUID(), stream.Width, stream.Height, info.Duration, info.Raw); err != nil {
		logger.Errorf("failed to save metadata job_uuid=%s error=%v", job.JobUUID(), err)
	}

	outDir := filepath.Join(s.outputDir, job.JobUUID())
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		s.markError(ctx, job.JobUUID(), fmt.Sprintf("create output dir: %v", err))
		return
	}
	if err := s.videoRepo.SetTranscodedPath(ctx, job.JobUUID(), outDir); err != nil {
		logger.Errorf("failed to save output dir job_uuid=%s error=%v", job.JobUUID(), err)
	}

	// 截图与预览失败只记日志，主转码照常进行。
	var artifacts *ScreenshotArtifacts
	artifacts, err = s.screenshots.Generate(ctx, source, outDir, settings, info)
	if err != nil {
		logger.Errorf("screenshot stage failed job_uuid=%s error=%v", job.JobUUID(), err)
		artifacts = nil
	} else if err := s.videoRepo.SetScreenshotArtifacts(ctx, job.JobUUID(), artifacts.Screenshots, artifacts.Poster, artifacts.Thumbnail); err != nil {
		logger.Errorf("failed to save screenshots job_uuid=%s error=%v", job.JobUUID(), err)
	}

	previewPath := ""
	if settings.PreviewEnabled {
		previewPath, err = s.preview.Compose(ctx, source, outDir, settings, info.Duration)
		if err != nil {
			logger.Errorf("preview stage failed job_uuid=%s error=%v", job.JobUUID(), err)
			previewPath = ""
		} else if err := s.videoRepo.SetPreviewVideo(ctx, job.JobUUID(), previewPath); err != nil {
			logger.Errorf("failed to save preview job_uuid=%s error=%v", job.JobUUID(), err)
		}
	}

	output := filepath.Join(outDir, "output.mp4")
	if err := s.media.Transcode(ctx, buildTranscodeSpec(source, output, portrait, settings)); err != nil {
		// 主转码失败保留源文件，便于重试排查。
		logger.Errorf("transcode failed job_uuid=%s error=%v", job.JobUUID(), err)
		s.markError(ctx, job.JobUUID(), err.Error())
		return
	}

	outInfo, err := os.Stat(output)
	if err != nil {
		s.markError(ctx, job.JobUUID(), fmt.Sprintf("transcoded file missing: %v", err))
		return
	}
	if err := s.videoRepo.MarkFinished(ctx, job.JobUUID(), output, outInfo.Size()); err != nil {
		logger.Errorf("failed to mark finished job_uuid=%s error=%v", job.JobUUID(), err)
		return
	}
	logger.Infof("transcode finished job_uuid=%s size=%d", job.JobUUID(), outInfo.Size())

	if settings.HLSEnabled {
		playlist, err := s.hls.Segment(ctx, output, outDir, info.HasAudio())
		if err != nil {
			logger.Errorf("hls stage failed job_uuid=%s error=%v", job.JobUUID(), err)
		} else if err := s.videoRepo.SetM3U8Path(ctx, job.JobUUID(), playlist); err != nil {
			logger.Errorf("failed to save m3u8 path job_uuid=%s error=%v", job.JobUUID(), err)
		}
	}

	s.mirrorArtifacts(ctx, job.JobUUID(), output, artifacts)
	s.removeSource(source)
	s.notify(ctx, job, info, output, previewPath, artifacts)
}

func buildTranscodeSpec(input, output string, portrait bool, settings vo.Settings) port.TranscodeSpec {
	spec := port.TranscodeSpec{
		Input:       input,
		Output:      output,
		ScaleExpr:   settings.ScaleExpr(portrait),
		BitrateKbps: settings.BitrateKbps,
		FrameRate:   settings.FrameRate,
	}
	if settings.WatermarkEnabled && settings.WatermarkImage != "" {
		spec.Watermark = &port.WatermarkOverlay{
			ImagePath:  settings.WatermarkImage,
			ScaleWidth: settings.WatermarkScaleWidth(),
			Position:   settings.WatermarkPosition.OverlayExpr(),
		}
	}
	return spec
}

// mirrorArtifacts 可选地把成品上传到对象存储，失败只记日志。
func (s *transcodeServiceImpl) mirrorArtifacts(ctx context.Context, jobUUID, output string, artifacts *ScreenshotArtifacts) {
	if s.store == nil {
		return
	}
	if _, err := s.store.Mirror(ctx, output, jobUUID+"/output.mp4", "video/mp4"); err != nil {
		logger.Warnf("failed to mirror output job_uuid=%s error=%v", jobUUID, err)
	}
	if artifacts != nil && artifacts.Poster != "" {
		key := jobUUID + "/" + filepath.Base(artifacts.Poster)
		if _, err := s.store.Mirror(ctx, artifacts.Poster, key, "image/jpeg"); err != nil {
			logger.Warnf("failed to mirror poster job_uuid=%s error=%v", jobUUID, err)
		}
	}
}

// removeSource 成功后删除源文件及其同名json边车
func (s *transcodeServiceImpl) removeSource(source string) {
	for _, path := range []string{source, source + ".json"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warnf("failed to remove source file path=%s error=%v", path, err)
		}
	}
}

// notify 成功完成后按固定顺序推送产物：成品视频、预览片、拼图或海报。
func (s *transcodeServiceImpl) notify(ctx context.Context, job *entity.VideoJobEntity, info *vo.MediaInfo, output, previewPath string, artifacts *ScreenshotArtifacts) {
	if !job.HasSubscriber() || s.notifier == nil {
		return
	}

	stream := info.VideoStream()
	attachments := []vo.Attachment{{
		Type:     vo.AttachmentVideo,
		Path:     output,
		Caption:  job.Title(),
		Duration: info.Duration,
		Width:    stream.Width,
		Height:   stream.Height,
	}}
	if previewPath != "" {
		attachments = append(attachments, vo.Attachment{Type: vo.AttachmentVideo, Path: previewPath, Caption: job.Title() + " (preview)"})
	}
	if artifacts != nil {
		still := artifacts.Thumbnail
		if still == "" {
			still = artifacts.Poster
		}
		if still != "" {
			attachments = append(attachments, vo.Attachment{Type: vo.AttachmentPhoto, Path: still})
		}
	}

	if err := s.notifier.Notify(ctx, job.NotifyTarget(), attachments); err != nil {
		logger.Errorf("failed to notify job_uuid=%s target=%s error=%v", job.JobUUID(), job.NotifyTarget(), err)
	}
}

func (s *transcodeServiceImpl) markError(ctx context.Context, jobUUID, message string) {
	if err := s.videoRepo.MarkError(ctx, jobUUID, message); err != nil {
		logger.Errorf("failed to mark video error job_uuid=%s error=%v", jobUUID, err)
	}
}
