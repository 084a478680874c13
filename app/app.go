package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidprocc/vidpro/ddd/application/app"
	"github.com/vidprocc/vidpro/ddd/domain/gateway"
	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/ddd/domain/service"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/persistence"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/po"
	"github.com/vidprocc/vidpro/ddd/infrastructure/downloader"
	"github.com/vidprocc/vidpro/ddd/infrastructure/executor"
	imagingengine "github.com/vidprocc/vidpro/ddd/infrastructure/imaging"
	"github.com/vidprocc/vidpro/ddd/infrastructure/limiter"
	"github.com/vidprocc/vidpro/ddd/infrastructure/notify"
	"github.com/vidprocc/vidpro/ddd/infrastructure/storage"
	"github.com/vidprocc/vidpro/internal/resource"
	"github.com/vidprocc/vidpro/pkg/config"
	"github.com/vidprocc/vidpro/pkg/kafka"
	"github.com/vidprocc/vidpro/pkg/logger"
	"github.com/vidprocc/vidpro/pkg/manager"
	"github.com/vidprocc/vidpro/pkg/middleware"
	"github.com/vidprocc/vidpro/pkg/observability"
	"github.com/vidprocc/vidpro/pkg/registry"

	// 触发init注册
	_ "github.com/vidprocc/vidpro/ddd/adapter/http"
	_ "github.com/vidprocc/vidpro/ddd/infrastructure/worker"
)

func Run() {
	fmt.Println("[STARTUP] Starting vidpro service...")

	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config (%s): %v\n", cfgPath, err)
		os.Exit(1)
	}
	// 全局配置必须先于资源初始化
	config.SetGlobalConfig(cfg)
	fmt.Printf("[STARTUP] Config file loaded: %s\n", cfgPath)

	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	logger.Infof("vidpro service starting config=%s", cfgPath)

	observability.StartProfiling("vidpro", cfg.Profiling)

	// 外部工具缺失直接在启动阶段失败
	mustLookPath("ffmpeg", cfg.Pipeline.FFmpegPath)
	mustLookPath("ffprobe", cfg.Pipeline.FFprobePath)
	mustLookPath("yt-dlp", cfg.Pipeline.YtDlpPath)

	logger.Infof("Initializing resources...")
	manager.MustInitResources()
	defer manager.CloseResources()

	db := resource.DefaultMysqlResource().MainDB()
	if err := db.AutoMigrate(&po.DownloadJob{}, &po.VideoJob{}, &po.Setting{}); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to migrate database schema error=%v", err))
	}

	// 仓储与领域服务组装
	downloadRepo := persistence.NewDownloadJobRepo()
	videoRepo := persistence.NewVideoJobRepo()
	settingRepo := persistence.NewSettingRepo()
	if err := settingRepo.EnsureDefaults(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to seed default settings error=%v", err))
	}

	prober := executor.NewFFprobeProber(cfg.Pipeline.FFprobePath, cfg.Pipeline.ToolTimeout)
	mediaEngine := executor.NewFFmpegEngine(cfg.Pipeline.FFmpegPath, cfg.Pipeline.VideoCodec, cfg.Pipeline.ToolTimeout)
	imageEngine := imagingengine.NewEngine()
	ytdlp := downloader.NewYtDlpDownloader(cfg.Pipeline.YtDlpPath, cfg.Pipeline.ToolTimeout)

	screenshotSvc := service.NewScreenshotService(mediaEngine, imageEngine, cfg.Pipeline.StillExt)
	previewSvc := service.NewPreviewService(mediaEngine, cfg.Pipeline.PreviewSegmentLength.Seconds(), cfg.Pipeline.PreviewSegmentCount)
	hlsSvc := service.NewHLSService(mediaEngine, cfg.Public.StripPrefix)

	notifier := notify.NewKafkaNotifier(kafkaClient(cfg), cfg.Kafka.Topics.Notifications)
	spoolSvc := service.NewSpoolService(downloadRepo, videoRepo, ytdlp, buildLimiter(cfg), cfg.Spooler.DownloadDir)
	transcodeSvc := service.NewTranscodeService(
		videoRepo, settingRepo, prober, mediaEngine,
		screenshotSvc, previewSvc, hlsSvc,
		notifier, artifactStore(cfg), cfg.Pipeline.OutputDir,
	)

	mediaApp := app.NewMediaAppWith(downloadRepo, videoRepo, settingRepo)

	deps := &manager.Dependencies{
		DB:         db,
		Config:     cfg,
		MediaApp:   mediaApp,
		Spooler:    spoolSvc,
		Transcoder: transcodeSvc,
	}

	logger.Infof("Starting components...")
	manager.MustInitComponents(deps)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestContextMiddleware())
	manager.RegisterAllRoutes(router, deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(fmt.Sprintf("Failed to start HTTP server error=%v", err))
		}
	}()
	logger.Infof("HTTP server started addr=%s", addr)

	serviceRegistry := registerService(cfg, addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Received shutdown signal, shutting down...")

	if serviceRegistry != nil {
		if err := serviceRegistry.Deregister(); err != nil {
			logger.Errorf("Failed to deregister service error=%v", err)
		}
	}

	manager.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to close error=%v", err)
	}

	logger.Infof("Server exited safely")
	logService.Close()
}

// kafkaClient 通知总线未启用时返回nil，Notifier降级为日志。
func kafkaClient(cfg *config.Config) *kafka.Client {
	if !cfg.Kafka.Enabled {
		return nil
	}
	return resource.DefaultKafkaResource().Client()
}

// artifactStore MinIO未启用时返回nil，不做产物镜像。
func artifactStore(cfg *config.Config) gateway.ArtifactStore {
	if !cfg.Minio.Enabled {
		return nil
	}
	return storage.NewMinioArtifactStore(resource.DefaultMinioResource())
}

// buildLimiter 按配置选择本地或Redis槽位限制
func buildLimiter(cfg *config.Config) port.SlotLimiter {
	if cfg.Spooler.Limiter == "redis" && cfg.Redis.Enabled {
		client := resource.DefaultRedisResource().Client()
		if client != nil {
			return limiter.NewRedisSlotLimiter(client, "vidpro:download:slots", cfg.Spooler.MaxConcurrent)
		}
		logger.Warnf("redis limiter configured but redis is unavailable, falling back to local")
	}
	return limiter.NewLocalSlotLimiter(cfg.Spooler.MaxConcurrent)
}

func registerService(cfg *config.Config, addr string) *registry.ServiceRegistry {
	if !cfg.ServiceRegistry.Enabled {
		return nil
	}
	registerAddr := addr
	if cfg.ServiceRegistry.RegisterHost != "" {
		registerAddr = fmt.Sprintf("%s:%d", cfg.ServiceRegistry.RegisterHost, cfg.Server.Port)
	}
	sr, err := registry.NewServiceRegistry(cfg.ServiceRegistry, registerAddr)
	if err != nil {
		logger.Errorf("Failed to create service registry error=%v", err)
		return nil
	}
	if err := sr.Register(); err != nil {
		logger.Errorf("Failed to register service error=%v", err)
		return nil
	}
	return sr
}

func mustLookPath(name, configured string) {
	bin := strings.TrimSpace(configured)
	if bin == "" {
		bin = name
	}
	if _, err := exec.LookPath(bin); err != nil {
		logger.Fatal(fmt.Sprintf("%s binary not found binary=%s error=%v", name, bin, err))
	}
}

// resolveConfigPath 支持CONFIG_PATH覆盖、CONFIG_ENV区分环境
func resolveConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	env := strings.ToLower(strings.TrimSpace(os.Getenv("CONFIG_ENV")))
	if env == "" {
		env = "dev"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}
