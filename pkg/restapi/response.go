package restapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidprocc/vidpro/pkg/errno"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Failed 错误响应；errno错误按业务码返回，其余按500处理
func Failed(c *gin.Context, err error) {
	var e *errno.Errno
	if errors.As(err, &e) {
		status := http.StatusOK
		switch e.Code {
		case errno.ErrUnauthorized.Code:
			status = http.StatusUnauthorized
		case errno.ErrNotFound.Code, errno.ErrDownloadNotFound.Code, errno.ErrVideoNotFound.Code:
			status = http.StatusNotFound
		case errno.ErrInvalidParam.Code:
			status = http.StatusBadRequest
		}
		c.JSON(status, Response{Code: e.Code, Message: e.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, Response{
		Code:    errno.ErrInternalServer.Code,
		Message: err.Error(),
	})
}
