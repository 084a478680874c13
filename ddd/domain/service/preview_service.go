package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// PreviewService 预览片合成：等距截取短片段后无重编码拼接。
type PreviewService interface {
	Compose(ctx context.Context, input, outputDir string, settings vo.Settings, duration float64) (string, error)
}

type previewServiceImpl struct {
	media port.MediaEngine
	// segmentSeconds 每段时长
	segmentSeconds float64
	// segmentCount 取样段数
	segmentCount int
}

// NewPreviewService 创建预览服务
func NewPreviewService(media port.MediaEngine, segmentSeconds float64, segmentCount int) PreviewService {
	if segmentSeconds <= 0 {
		segmentSeconds = 2
	}
	if segmentCount < 1 {
		segmentCount = 5
	}
	return &previewServiceImpl{media: media, segmentSeconds: segmentSeconds, segmentCount: segmentCount}
}

// SegmentStarts 计算各段起始时间：首段从0开始，末段收尾在视频结尾，
// 中间等距分布，interval = (duration-segmentSeconds)/(count-1)。
// 视频不足以容纳全部片段时报错。
func SegmentStarts(duration, segmentSeconds float64, count int) ([]float64, error) {
	if duration < segmentSeconds*float64(count) {
		return nil, fmt.Errorf("cannot generate video preview, video is shorter than %.0f seconds", segmentSeconds*float64(count))
	}
	starts := make([]float64, count)
	if count == 1 {
		return starts, nil
	}
	interval := (duration - segmentSeconds) / float64(count-1)
	for i := 0; i < count; i++ {
		starts[i] = float64(i) * interval
	}
	return starts, nil
}

// Compose 并发截取片段，全部成功后拼接为单个预览文件。
// 中间片段无论成败都会清理。
func (s *previewServiceImpl) Compose(ctx context.Context, input, outputDir string, settings vo.Settings, duration float64) (string, error) {
	starts, err := SegmentStarts(duration, s.segmentSeconds, s.segmentCount)
	if err != nil {
		return "", err
	}

	segments := make([]string, len(starts))
	errs := make([]error, len(starts))
	var wg sync.WaitGroup
	for i, start := range starts {
		segments[i] = filepath.Join(outputDir, fmt.Sprintf("preview%d.mp4", i+1))
		wg.Add(1)
		go func(i int, start float64) {
			defer wg.Done()
			spec := port.ClipSpec{
				Input:    input,
				Output:   segments[i],
				Start:    start,
				Duration: s.segmentSeconds,
				Width:    settings.PreviewWidth,
				Height:   settings.PreviewHeight,
			}
			if err := s.media.Clip(ctx, spec); err != nil {
				errs[i] = fmt.Errorf("preview segment %d: %w", i+1, err)
			}
		}(i, start)
	}
	wg.Wait()

	defer func() {
		for _, seg := range segments {
			if err := os.Remove(seg); err != nil && !os.IsNotExist(err) {
				logger.Warnf("failed to remove preview segment path=%s error=%v", seg, err)
			}
		}
	}()

	for _, err := range errs {
		if err != nil {
			return "", err
		}
	}

	output := filepath.Join(outputDir, "preview.mp4")
	if err := s.media.ConcatCopy(ctx, segments, output); err != nil {
		return "", fmt.Errorf("concat preview segments: %w", err)
	}
	return output, nil
}
