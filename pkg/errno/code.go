package errno

// code=0 请求成功
// code=4xx 客户端请求错误
// code=5xx 服务器端错误
// code=2xxxx 业务处理错误码

type Errno struct {
	Code    int
	Message string
}

// Error 实现error接口
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrInvalidParam = &Errno{Code: 400, Message: "Invalid parameter"}
	ErrUnauthorized = &Errno{Code: 401, Message: "Unauthorized"}
	ErrNotFound     = &Errno{Code: 404, Message: "Not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrDatabase       = &Errno{Code: 501, Message: "Database error"}

	// 业务错误码
	ErrTitleRequired     = &Errno{Code: 21001, Message: "Title is required"}
	ErrURLRequired       = &Errno{Code: 21002, Message: "URL is required"}
	ErrURLInvalid        = &Errno{Code: 21003, Message: "URL is invalid"}
	ErrDownloadNotFound  = &Errno{Code: 21004, Message: "Download not found"}
	ErrVideoNotFound     = &Errno{Code: 21005, Message: "Video not found"}
	ErrSettingsNotFound  = &Errno{Code: 21006, Message: "Settings not found"}
	ErrSettingsInvalid   = &Errno{Code: 21007, Message: "Settings are invalid"}
	ErrVideoNotDeletable = &Errno{Code: 21008, Message: "Video is transcoding and cannot be deleted"}
)
