package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidprocc/vidpro/ddd/application/app"
	"github.com/vidprocc/vidpro/pkg/manager"
	"github.com/vidprocc/vidpro/pkg/middleware"
)

// SetupRoutes 设置路由。删除接口需要JWT鉴权，其余接口开放。
func SetupRoutes(engine *gin.Engine, deps *manager.Dependencies) {
	mediaApp, ok := deps.MediaApp.(app.MediaApp)
	if !ok {
		panic("http router requires a MediaApp in dependencies")
	}

	downloadController := NewDownloadController(mediaApp)
	videoController := NewVideoController(mediaApp)
	settingController := NewSettingController(mediaApp)

	jwtCfg := deps.Config.JWT
	authRequired := middleware.JWTAuthMiddleware(jwtCfg.Secret, jwtCfg.Issuer)

	v1 := engine.Group("/api/v1")
	{
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadController.CreateDownload)
			downloads.GET("", downloadController.ListDownloads)
			downloads.GET("/:job_uuid", downloadController.GetDownload)
			downloads.DELETE("/:job_uuid", authRequired, downloadController.DeleteDownload)
		}

		videos := v1.Group("/videos")
		{
			videos.GET("", videoController.ListVideos)
			videos.GET("/:job_uuid", videoController.GetVideo)
			videos.PUT("/:job_uuid/pause", videoController.PauseVideo)
			videos.DELETE("/:job_uuid", authRequired, videoController.DeleteVideo)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", settingController.GetSettings)
			settings.PUT("", settingController.UpdateSettings)
		}
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "vidpro",
		})
	})
}

func init() {
	manager.RegisterRoutes(SetupRoutes)
}
