package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// ffprobe的JSON输出结构，只取用到的字段。
type ffprobeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Duration   string `json:"duration"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

// FFprobeProber 通过一次ffprobe调用拿到容器与全部流信息
type FFprobeProber struct {
	binPath string
	timeout time.Duration
}

// NewFFprobeProber 创建探测器
func NewFFprobeProber(binPath string, timeout time.Duration) port.Prober {
	if binPath == "" {
		binPath = "ffprobe"
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &FFprobeProber{binPath: binPath, timeout: timeout}
}

// Probe 执行探测并解析JSON输出
func (p *FFprobeProber) Probe(ctx context.Context, path string) (*vo.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	out, err := exec.CommandContext(ctx, p.binPath, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return nil, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}

	info := &vo.MediaInfo{
		Duration: parseFloat(probed.Format.Duration),
		Raw:      string(out),
	}
	for _, s := range probed.Streams {
		info.Streams = append(info.Streams, vo.StreamInfo{
			CodecType:  s.CodecType,
			CodecName:  s.CodecName,
			Width:      s.Width,
			Height:     s.Height,
			Duration:   parseFloat(s.Duration),
			RFrameRate: s.RFrameRate,
			NbFrames:   parseInt(s.NbFrames),
		})
	}
	return info, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
