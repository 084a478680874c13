package port

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// Prober 媒体探测端口。一次调用返回容器与全部流的信息。
type Prober interface {
	Probe(ctx context.Context, path string) (*vo.MediaInfo, error)
}
