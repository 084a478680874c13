package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// stderrTailLimit 失败时保留的工具输出长度
const stderrTailLimit = 2000

// FFmpegEngine 基于外部ffmpeg进程的视频处理实现
type FFmpegEngine struct {
	binPath string
	codec   string
	timeout time.Duration
}

// NewFFmpegEngine 创建引擎。codec为空时使用libx264。
func NewFFmpegEngine(binPath, codec string, timeout time.Duration) port.MediaEngine {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	if codec == "" {
		codec = "libx264"
	}
	if timeout <= 0 {
		timeout = time.Hour
	}
	return &FFmpegEngine{binPath: binPath, codec: codec, timeout: timeout}
}

// Transcode 主转码：缩放、可选水印、固定音频参数。
func (e *FFmpegEngine) Transcode(ctx context.Context, spec port.TranscodeSpec) error {
	args := []string{"-i", spec.Input}
	if spec.Watermark != nil {
		filter := fmt.Sprintf(
			"[0:v]scale=%s[scaled];[1:v]scale=%d:-1[wm];[scaled][wm]overlay=%s",
			spec.ScaleExpr, spec.Watermark.ScaleWidth, spec.Watermark.Position,
		)
		args = append(args, "-i", spec.Watermark.ImagePath, "-filter_complex", filter)
	} else {
		args = append(args, "-vf", "scale="+spec.ScaleExpr)
	}
	args = append(args,
		"-c:v", e.codec,
		"-b:v", strconv.Itoa(spec.BitrateKbps)+"k",
		"-r", strconv.Itoa(spec.FrameRate),
		"-c:a", "aac",
		"-ac", "2",
		"-b:a", "128k",
		"-movflags", "faststart",
		"-y", spec.Output,
	)
	return e.run(ctx, args)
}

// ExtractFrame 指定时间点抽取单帧
func (e *FFmpegEngine) ExtractFrame(ctx context.Context, input string, seekSeconds float64, output string) error {
	args := []string{
		"-ss", formatSeconds(seekSeconds),
		"-i", input,
		"-frames:v", "1",
		"-q:v", "2",
		"-y", output,
	}
	return e.run(ctx, args)
}

// Clip 截取片段并缩放补边到目标尺寸
func (e *FFmpegEngine) Clip(ctx context.Context, spec port.ClipSpec) error {
	w := dimExpr(spec.Width)
	h := dimExpr(spec.Height)
	// 两边都给定时缩放后补黑边到统一尺寸，否则只按比例缩放。
	filter := fmt.Sprintf("scale=%s:%s", w, h)
	if spec.Width > 0 && spec.Height > 0 {
		filter = fmt.Sprintf(
			"scale=%s:%s:force_original_aspect_ratio=decrease,pad=%s:%s:-1:-1:color=black",
			w, h, w, h,
		)
	}
	args := []string{
		"-ss", formatSeconds(spec.Start),
		"-t", formatSeconds(spec.Duration),
		"-i", spec.Input,
		"-vf", filter,
		"-c:v", e.codec,
		"-c:a", "aac",
		"-movflags", "faststart",
		"-y", spec.Output,
	}
	return e.run(ctx, args)
}

// ConcatCopy 用concat demuxer无重编码拼接。清单文件用完即删。
func (e *FFmpegEngine) ConcatCopy(ctx context.Context, inputs []string, output string) error {
	var list strings.Builder
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("resolve concat input %s: %w", in, err)
		}
		fmt.Fprintf(&list, "file '%s'\n", abs)
	}
	listFile := output + ".filelist.txt"
	if err := os.WriteFile(listFile, []byte(list.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer func() {
		if err := os.Remove(listFile); err != nil && !os.IsNotExist(err) {
			logger.Warnf("failed to remove concat list path=%s error=%v", listFile, err)
		}
	}()

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		"-y", output,
	}
	return e.run(ctx, args)
}

// SegmentHLS 流拷贝切片并按key info加密
func (e *FFmpegEngine) SegmentHLS(ctx context.Context, spec port.HLSSpec) error {
	args := []string{
		"-i", spec.Input,
		"-map", "0:v:0",
	}
	if spec.IncludeAudio {
		args = append(args, "-map", "0:a:0")
	}
	args = append(args,
		"-c", "copy",
		"-bsf:v", "h264_mp4toannexb",
		"-hls_time", strconv.Itoa(spec.SegmentSeconds),
		"-hls_segment_filename", spec.SegmentPattern,
		"-strict", "-2",
		"-start_number", "0",
		"-hls_list_size", "0",
		"-hls_key_info_file", spec.KeyInfoPath,
		"-y", spec.PlaylistPath,
	)
	return e.run(ctx, args)
}

func (e *FFmpegEngine) run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	logger.Debugf("exec ffmpeg args=%s", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, e.binPath, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail(out, stderrTailLimit))
	}
	return nil
}

// dimExpr 0表示该边按比例推算（偶数对齐）
func dimExpr(v int) string {
	if v <= 0 {
		return "-2"
	}
	return strconv.Itoa(v)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func tail(out []byte, limit int) string {
	s := strings.TrimSpace(string(out))
	if len(s) > limit {
		s = s[len(s)-limit:]
	}
	return s
}
