package gateway

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

// Notifier 完成通知网关。附件顺序即投递顺序。
type Notifier interface {
	Notify(ctx context.Context, target string, attachments []vo.Attachment) error
}
