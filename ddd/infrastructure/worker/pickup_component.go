package worker

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/service"
	"github.com/vidprocc/vidpro/pkg/manager"
	"github.com/vidprocc/vidpro/pkg/task"
)

// PickupComponent 周期性驱动下载与转码的领取循环
type PickupComponent struct {
	tasks  []*task.PeriodicTask
	cancel context.CancelFunc
}

func (c *PickupComponent) GetName() string { return "pickup-worker" }

func (c *PickupComponent) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	for _, t := range c.tasks {
		if err := t.Start(ctx); err != nil {
			cancel()
			return err
		}
	}
	return nil
}

func (c *PickupComponent) Stop() error {
	for i := len(c.tasks) - 1; i >= 0; i-- {
		_ = c.tasks[i].Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

// PickupComponentPlugin wires the component into the manager.
type PickupComponentPlugin struct{}

func (p *PickupComponentPlugin) Name() string { return "pickup-worker" }

func (p *PickupComponentPlugin) MustCreateComponent(deps *manager.Dependencies) manager.Component {
	spooler, ok := deps.Spooler.(service.SpoolService)
	if !ok {
		panic("pickup-worker requires a SpoolService in dependencies")
	}
	transcoder, ok := deps.Transcoder.(service.TranscodeService)
	if !ok {
		panic("pickup-worker requires a TranscodeService in dependencies")
	}

	cfg := deps.Config.Trigger
	return &PickupComponent{
		tasks: []*task.PeriodicTask{
			task.NewPeriodicTask("download-pickup", cfg.DownloadInterval, spooler.PickupDownload),
			task.NewPeriodicTask("transcode-pickup", cfg.TranscodeInterval, transcoder.PickupTranscode),
		},
	}
}

func init() {
	manager.RegisterComponentPlugin(&PickupComponentPlugin{})
}
