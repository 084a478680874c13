package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vidprocc/vidpro/ddd/application/app"
	"github.com/vidprocc/vidpro/ddd/application/cqe"
	"github.com/vidprocc/vidpro/pkg/errno"
	"github.com/vidprocc/vidpro/pkg/restapi"
)

// DownloadController 下载任务接口
type DownloadController struct {
	mediaApp app.MediaApp
}

// NewDownloadController 创建下载控制器
func NewDownloadController(mediaApp app.MediaApp) *DownloadController {
	return &DownloadController{mediaApp: mediaApp}
}

// CreateDownload 登记下载任务
func (c *DownloadController) CreateDownload(ctx *gin.Context) {
	var req cqe.CreateDownloadCqe
	if err := ctx.ShouldBindJSON(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam)
		return
	}
	out, err := c.mediaApp.CreateDownload(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

// GetDownload 下载任务详情
func (c *DownloadController) GetDownload(ctx *gin.Context) {
	out, err := c.mediaApp.GetDownload(ctx.Request.Context(), ctx.Param("job_uuid"))
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

// ListDownloads 下载任务列表
func (c *DownloadController) ListDownloads(ctx *gin.Context) {
	var req cqe.ListCqe
	if err := ctx.ShouldBindQuery(&req); err != nil {
		restapi.Failed(ctx, errno.ErrInvalidParam)
		return
	}
	out, err := c.mediaApp.ListDownloads(ctx.Request.Context(), &req)
	if err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, out)
}

// DeleteDownload 删除下载任务记录
func (c *DownloadController) DeleteDownload(ctx *gin.Context) {
	if err := c.mediaApp.DeleteDownload(ctx.Request.Context(), ctx.Param("job_uuid")); err != nil {
		restapi.Failed(ctx, err)
		return
	}
	restapi.Success(ctx, nil)
}
