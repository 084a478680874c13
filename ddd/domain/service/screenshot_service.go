package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/pkg/logger"
)

const (
	// mosaicCols/mosaicRows 拼图固定2x2
	mosaicCols = 2
	mosaicRows = 2
	// mosaicMaxTiles 拼图最多取前12张截图
	mosaicMaxTiles = 12
	// mosaicMaxExtent 画布宽高之和超过该值时整体缩小
	mosaicMaxExtent = 10000
	mosaicRescale   = 9000
)

// ScreenshotArtifacts 截图阶段产出的全部静态图
type ScreenshotArtifacts struct {
	Screenshots []string
	Poster      string
	Thumbnail   string
}

// ScreenshotService 截图、海报与拼图生成
type ScreenshotService interface {
	Generate(ctx context.Context, input, outputDir string, settings vo.Settings, info *vo.MediaInfo) (*ScreenshotArtifacts, error)
}

type screenshotServiceImpl struct {
	media    port.MediaEngine
	images   port.ImageEngine
	stillExt string
}

// NewScreenshotService 创建截图服务
func NewScreenshotService(media port.MediaEngine, images port.ImageEngine, stillExt string) ScreenshotService {
	if stillExt == "" {
		stillExt = "jpg"
	}
	return &screenshotServiceImpl{media: media, images: images, stillExt: stillExt}
}

// FrameStats 从探测信息得到总帧数与帧率。优先使用流自带的帧数，
// 缺失时按时长×帧率估算。
func FrameStats(info *vo.MediaInfo) (totalFrames int64, fps float64, err error) {
	vs := info.VideoStream()
	if vs == nil {
		return 0, 0, fmt.Errorf("no video stream in media info")
	}
	fps = vs.FrameRate()
	if fps <= 0 {
		return 0, 0, fmt.Errorf("cannot determine frame rate from %q", vs.RFrameRate)
	}
	if vs.NbFrames > 0 {
		return vs.NbFrames, fps, nil
	}
	duration := vs.Duration
	if duration <= 0 {
		duration = info.Duration
	}
	if duration <= 0 {
		return 0, 0, fmt.Errorf("cannot estimate frame count: no duration")
	}
	total := int64(math.Floor(duration * fps))
	if total <= 0 {
		total = 1
	}
	return total, fps, nil
}

// ClampShotCount 请求数不超过总帧数，且至少为1。
func ClampShotCount(requested int, totalFrames int64) int {
	if requested < 1 {
		requested = 1
	}
	if int64(requested) > totalFrames {
		requested = int(totalFrames)
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

// FrameOffsets 均匀取帧：间隔为totalFrames/count，首帧从0开始，
// 每个偏移截断到最后一帧以内。
func FrameOffsets(totalFrames int64, count int) []int64 {
	interval := totalFrames / int64(count)
	if interval < 1 {
		interval = 1
	}
	offsets := make([]int64, count)
	for i := 0; i < count; i++ {
		frame := int64(i) * interval
		if frame > totalFrames-1 {
			frame = totalFrames - 1
		}
		offsets[i] = frame
	}
	return offsets
}

// Generate 并发抽帧，然后生成海报与可选的2x2拼图。
// 任何一步失败都整体失败，调用方不持久化部分产物。
func (s *screenshotServiceImpl) Generate(ctx context.Context, input, outputDir string, settings vo.Settings, info *vo.MediaInfo) (*ScreenshotArtifacts, error) {
	totalFrames, fps, err := FrameStats(info)
	if err != nil {
		return nil, err
	}
	count := ClampShotCount(settings.ScreenshotCount, totalFrames)
	offsets := FrameOffsets(totalFrames, count)

	paths := make([]string, count)
	errs := make([]error, count)
	var wg sync.WaitGroup
	for i, frame := range offsets {
		wg.Add(1)
		go func(i int, frame int64) {
			defer wg.Done()
			out := filepath.Join(outputDir, fmt.Sprintf("screenshot_%d.%s", i, s.stillExt))
			if err := s.media.ExtractFrame(ctx, input, float64(frame)/fps, out); err != nil {
				errs[i] = fmt.Errorf("screenshot %d (frame %d): %w", i, frame, err)
				return
			}
			paths[i] = out
		}(i, frame)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	artifacts := &ScreenshotArtifacts{Screenshots: paths}

	poster := filepath.Join(outputDir, "poster."+s.stillExt)
	if err := s.images.Resize(paths[0], poster, settings.PosterWidth, settings.PosterHeight); err != nil {
		return nil, fmt.Errorf("generate poster: %w", err)
	}
	artifacts.Poster = poster

	if settings.MosaicEnabled && count >= mosaicCols*mosaicRows {
		thumbnail, err := s.composeMosaic(paths, outputDir)
		if err != nil {
			return nil, err
		}
		artifacts.Thumbnail = thumbnail
	}

	return artifacts, nil
}

// composeMosaic 前4张截图按2x2拼接。画布过大时保留一份原图
// 并把拼图缩小到宽高和9000以内。
func (s *screenshotServiceImpl) composeMosaic(shots []string, outputDir string) (string, error) {
	tiles := shots
	if len(tiles) > mosaicMaxTiles {
		tiles = tiles[:mosaicMaxTiles]
	}
	tiles = tiles[:mosaicCols*mosaicRows]

	thumbnail := filepath.Join(outputDir, "thumbnail."+s.stillExt)
	width, height, err := s.images.Composite(tiles, mosaicCols, mosaicRows, thumbnail)
	if err != nil {
		return "", fmt.Errorf("compose mosaic: %w", err)
	}

	if width+height > mosaicMaxExtent {
		backup := filepath.Join(outputDir, "thumbnail_original."+s.stillExt)
		if err := copyFile(thumbnail, backup); err != nil {
			return "", fmt.Errorf("backup oversized mosaic: %w", err)
		}
		scale := float64(mosaicRescale) / float64(width+height)
		newWidth := int(math.Round(float64(width) * scale))
		if err := s.images.Resize(backup, thumbnail, newWidth, 0); err != nil {
			return "", fmt.Errorf("rescale oversized mosaic: %w", err)
		}
		logger.Infof("mosaic rescaled width=%d height=%d new_width=%d", width, height, newWidth)
	}
	return thumbnail, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
