package downloader

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// YtDlpDownloader 通过yt-dlp拉取远端媒体
type YtDlpDownloader struct {
	binPath string
	timeout time.Duration
}

// NewYtDlpDownloader 创建下载器
func NewYtDlpDownloader(binPath string, timeout time.Duration) port.Downloader {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = time.Hour
	}
	return &YtDlpDownloader{binPath: binPath, timeout: timeout}
}

// Fetch 下载url到dest。container限定容器格式，工具会在需要时合并音视频轨。
func (d *YtDlpDownloader) Fetch(ctx context.Context, url, dest, container string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	args := []string{
		"-f", container,
		"--no-progress",
		"--no-playlist",
		"-o", dest,
		url,
	}
	logger.Debugf("exec yt-dlp url=%s dest=%s", url, dest)
	out, err := exec.CommandContext(ctx, d.binPath, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if len(msg) > 1000 {
			msg = msg[len(msg)-1000:]
		}
		return fmt.Errorf("yt-dlp failed: %w: %s", err, msg)
	}
	return nil
}
