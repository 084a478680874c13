package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vidprocc/vidpro/ddd/application/app"
	"github.com/vidprocc/vidpro/ddd/application/cqe"
	"github.com/vidprocc/vidpro/pkg/errno"
	"github.com/vidprocc/vidpro/pkg/restapi"
)

// VideoController 转码任务接口
type VideoController struct {
	mediaApp app.MediaApp
}

// NewVideoController 创建转码控制器
func NewVideoController(mediaApp app.MediaApp) *VideoController {
	return &VideoController{mediaApp: mediaApp}
}

// GetVideo 转码任务详情
func (c *VideoController) GetVideo(ctx *gin.Context) {
	out, err := c.mediaApp.GetVideo(ctx.Request.Context(), ctx.Param("job_uuid"))
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

// ListVideos 转码任务列表
func (c *VideoController) ListVideos(ctx *gin.Context) {
	var req cqe.ListCqe
	if err := ctx.ShouldBindQuery(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam)
		return
	}
	out, err := c.mediaApp.ListVideos(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

// PauseVideo 暂停/恢复等待中的转码任务
func (c *VideoController) PauseVideo(ctx *gin.Context) {
	var req cqe.PauseVideoCqe
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam)
		return
	}
	if err := c.mediaApp.PauseVideo(ctx.Request.Context(), ctx.Param("job_uuid"), req.Paused); err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, nil)
}

// DeleteVideo 删除转码任务及其产物
func (c *VideoController) DeleteVideo(ctx *gin.Context) {
	if err := c.mediaApp.DeleteVideo(ctx.Request.Context(), ctx.Param("job_uuid")); err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, nil)
}
