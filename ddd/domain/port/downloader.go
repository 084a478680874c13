package port

import "context"

// Downloader 外部下载工具端口
type Downloader interface {
	// Fetch 下载url到dest，container指定容器格式（如mp4）。
	Fetch(ctx context.Context, url, dest, container string) error
}
