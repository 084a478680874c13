package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vidprocc/vidpro/ddd/application/app"
	"github.com/vidprocc/vidpro/ddd/application/cqe"
	"github.com/vidprocc/vidpro/pkg/errno"
	"github.com/vidprocc/vidpro/pkg/restapi"
)

// SettingController 全局转码配置接口
type SettingController struct {
	mediaApp app.MediaApp
}

// NewSettingController 创建配置控制器
func NewSettingController(mediaApp app.MediaApp) *SettingController {
	return &SettingController{mediaApp: mediaApp}
}

// GetSettings 读取配置
func (c *SettingController) GetSettings(ctx *gin.Context) {
	out, err := c.mediaApp.GetSettings(ctx.Request.Context())
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

// UpdateSettings 更新配置，下次领取的任务生效。
func (c *SettingController) UpdateSettings(ctx *gin.Context) {
	var req cqe.UpdateSettingsCqe
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam)
		return
	}
	out, err := c.mediaApp.UpdateSettings(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}
