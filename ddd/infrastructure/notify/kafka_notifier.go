package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vidprocc/vidpro/ddd/domain/gateway"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/pkg/kafka"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// notificationMessage 投递到消息总线的载荷
type notificationMessage struct {
	Target      string          `json:"target"`
	Attachments []vo.Attachment `json:"attachments"`
	SentAt      time.Time       `json:"sent_at"`
}

// KafkaNotifier 完成通知的Kafka实现。附件顺序随消息原样投递。
type KafkaNotifier struct {
	client *kafka.Client
	topic  string
}

// NewKafkaNotifier 创建通知网关。client为nil时通知只记日志。
func NewKafkaNotifier(client *kafka.Client, topic string) gateway.Notifier {
	return &KafkaNotifier{client: client, topic: topic}
}

func (n *KafkaNotifier) Notify(ctx context.Context, target string, attachments []vo.Attachment) error {
	if n.client == nil {
		logger.Infof("kafka disabled, skipping notification target=%s attachments=%d", target, len(attachments))
		return nil
	}

	payload, err := json.Marshal(notificationMessage{
		Target:      target,
		Attachments: attachments,
		SentAt:      time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.client.Produce(ctx, n.topic, []byte(target), payload); err != nil {
		return fmt.Errorf("produce notification: %w", err)
	}
	logger.Infof("notification sent target=%s attachments=%d", target, len(attachments))
	return nil
}
