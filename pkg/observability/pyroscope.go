package observability

import (
	"os"

	"github.com/grafana/pyroscope-go"

	"github.com/vidprocc/vidpro/pkg/config"
	"github.com/vidprocc/vidpro/pkg/logger"
)

// StartProfiling 按配置接入pyroscope持续剖析；未开启时为no-op。
func StartProfiling(appName string, cfg config.ProfilingConfig) {
	if !cfg.Enabled || cfg.ServerAddress == "" {
		return
	}

	hostname, _ := os.Hostname()
	_, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   cfg.ServerAddress,
		Tags:            map[string]string{"hostname": hostname},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		logger.Warnf("Failed to start pyroscope profiling error=%v", err)
	}
}
