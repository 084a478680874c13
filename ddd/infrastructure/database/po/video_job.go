package po

// VideoJob 转码任务持久化对象。Screenshots以JSON数组存储。
type VideoJob struct {
	BaseModel
	JobUUID        string  `gorm:"column:job_uuid;type:varchar(36);uniqueIndex" json:"job_uuid"`
	Title          string  `gorm:"column:title;type:varchar(255);index" json:"title"`
	Status         string  `gorm:"column:status;type:varchar(20);index" json:"status"`
	NotTranscoding bool    `gorm:"column:not_transcoding;default:false" json:"not_transcoding"`
	OriginalPath   string  `gorm:"column:original_path;type:varchar(512)" json:"original_path"`
	OriginalSize   int64   `gorm:"column:original_size;type:bigint;default:0" json:"original_size"`
	Width          int     `gorm:"column:width;type:int;default:0" json:"width"`
	Height         int     `gorm:"column:height;type:int;default:0" json:"height"`
	Duration       float64 `gorm:"column:duration;type:double;default:0" json:"duration"`
	Metadata       string  `gorm:"column:metadata;type:longtext" json:"metadata"`
	TranscodedPath string  `gorm:"column:transcoded_path;type:varchar(512)" json:"transcoded_path"`
	AfterPath      string  `gorm:"column:after_path;type:varchar(512)" json:"after_path"`
	AfterSize      int64   `gorm:"column:after_size;type:bigint;default:0" json:"after_size"`
	Screenshots    string  `gorm:"column:screenshots;type:text" json:"screenshots"`
	Poster         string  `gorm:"column:poster;type:varchar(512)" json:"poster"`
	Thumbnail      string  `gorm:"column:thumbnail;type:varchar(512)" json:"thumbnail"`
	PreviewVideo   string  `gorm:"column:preview_video;type:varchar(512)" json:"preview_video"`
	M3U8Path       string  `gorm:"column:m3u8_path;type:varchar(512)" json:"m3u8_path"`
	ErrorMessage   string  `gorm:"column:error_message;type:varchar(500)" json:"error_message"`
	NotifyTarget   string  `gorm:"column:notify_target;type:varchar(128)" json:"notify_target"`
}

// TableName 指定表名
func (VideoJob) TableName() string {
	return "video_jobs"
}
