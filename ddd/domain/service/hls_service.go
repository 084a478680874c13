package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/pkg/logger"
)

const (
	// hlsKeyAlphabet AES密钥从该字符集随机取样
	hlsKeyAlphabet = "0123456789abcdefgABCDEFG"
	// hlsKeyLength 16字节密钥
	hlsKeyLength = 16
	// hlsSegmentSeconds 每个切片时长
	hlsSegmentSeconds = 4
)

// HLSService 对成品做流拷贝切片并加密
type HLSService interface {
	// Segment 切片input，产物写入outputDir/hls，返回播放列表路径。
	// includeAudio指明源是否带音频流，无音频时不映射音轨。
	Segment(ctx context.Context, input, outputDir string, includeAudio bool) (string, error)
}

type hlsServiceImpl struct {
	media port.MediaEngine
	// publicPrefix 从密钥URI中剥离的本地路径前缀
	publicPrefix string
}

// NewHLSService 创建HLS切片服务
func NewHLSService(media port.MediaEngine, publicPrefix string) HLSService {
	return &hlsServiceImpl{media: media, publicPrefix: publicPrefix}
}

// GenerateHLSKey 用crypto/rand从固定字符集生成n字节密钥
func GenerateHLSKey(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = hlsKeyAlphabet[int(b)%len(hlsKeyAlphabet)]
	}
	return string(out), nil
}

// KeyURI 播放列表中引用的密钥地址：剥离本地前缀后的相对路径。
func KeyURI(hlsDir, publicPrefix string) string {
	uri := hlsDir
	if publicPrefix != "" {
		uri = strings.TrimPrefix(uri, publicPrefix)
	}
	uri = filepath.ToSlash(uri)
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}
	return uri + "/ts.key"
}

func (s *hlsServiceImpl) Segment(ctx context.Context, input, outputDir string, includeAudio bool) (string, error) {
	hlsDir := filepath.Join(outputDir, "hls")
	if err := os.MkdirAll(hlsDir, 0o755); err != nil {
		return "", fmt.Errorf("create hls dir: %w", err)
	}

	key, err := GenerateHLSKey(hlsKeyLength)
	if err != nil {
		return "", err
	}
	keyPath := filepath.Join(hlsDir, "ts.key")
	keyInfoPath := filepath.Join(hlsDir, "key.info")
	if err := os.WriteFile(keyPath, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("write hls key: %w", err)
	}
	keyInfo := KeyURI(hlsDir, s.publicPrefix) + "\n" + keyPath
	if err := os.WriteFile(keyInfoPath, []byte(keyInfo), 0o600); err != nil {
		return "", fmt.Errorf("write hls key info: %w", err)
	}

	playlist := filepath.Join(hlsDir, "output.m3u8")
	spec := port.HLSSpec{
		Input:          input,
		PlaylistPath:   playlist,
		SegmentPattern: filepath.Join(hlsDir, "media_%d.ts"),
		KeyInfoPath:    keyInfoPath,
		SegmentSeconds: hlsSegmentSeconds,
		IncludeAudio:   includeAudio,
	}
	if err := s.media.SegmentHLS(ctx, spec); err != nil {
		// 失败时不留下密钥材料
		if rmErr := os.Remove(keyPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warnf("failed to remove hls key path=%s error=%v", keyPath, rmErr)
		}
		_ = os.Remove(keyInfoPath)
		return "", fmt.Errorf("segment hls: %w", err)
	}

	// key.info是切片工具的临时输入，成功后即清理；ts.key要随产物发布。
	if err := os.Remove(keyInfoPath); err != nil && !os.IsNotExist(err) {
		logger.Warnf("failed to remove hls key info path=%s error=%v", keyInfoPath, err)
	}
	return playlist, nil
}
