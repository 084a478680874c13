package resource

import (
	"sync"

	"github.com/vidprocc/vidpro/pkg/assert"
	"github.com/vidprocc/vidpro/pkg/config"
	"github.com/vidprocc/vidpro/pkg/kafka"
	"github.com/vidprocc/vidpro/pkg/logger"
	"github.com/vidprocc/vidpro/pkg/manager"
)

var (
	kafkaResourceOnce sync.Once
	kafkaSingleton    *KafkaResource
)

// KafkaResource 管理共享Kafka客户端
type KafkaResource struct {
	client *kafka.Client
	opened bool
}

// DefaultKafkaResource 获取Kafka资源单例
func DefaultKafkaResource() *KafkaResource {
	kafkaResourceOnce.Do(func() {
		kafkaSingleton = &KafkaResource{}
	})
	assert.NotNil(kafkaSingleton)
	return kafkaSingleton
}

// MustOpen 初始化Kafka客户端；未启用时跳过。
func (r *KafkaResource) MustOpen() {
	if r.opened {
		return
	}

	cfg := config.GetGlobalConfig()
	if cfg == nil {
		panic("global config not initialized")
	}
	if !cfg.Kafka.Enabled {
		logger.Infof("Kafka disabled, skipping resource")
		return
	}

	r.client = kafka.DefaultClient()
	r.client.MustOpen()
	if err := r.client.EnsureTopic(cfg.Kafka.Topics.Notifications, 1, 1); err != nil {
		logger.Warnf("Failed to ensure notification topic error=%v", err)
	}
	r.opened = true
}

// Close 关闭Kafka客户端
func (r *KafkaResource) Close() {
	if r.client != nil {
		r.client.Close()
	}
}

// Client 获取Kafka客户端；未启用时为nil。
func (r *KafkaResource) Client() *kafka.Client {
	if !r.opened {
		return nil
	}
	return r.client
}

// KafkaResourcePlugin wires the resource into the manager.
type KafkaResourcePlugin struct{}

func (p *KafkaResourcePlugin) Name() string { return "kafka" }

func (p *KafkaResourcePlugin) MustCreateResource() manager.Resource {
	return DefaultKafkaResource()
}
