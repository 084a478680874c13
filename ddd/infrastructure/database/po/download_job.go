package po

// DownloadJob 下载任务持久化对象
type DownloadJob struct {
	BaseModel
	JobUUID      string `gorm:"column:job_uuid;type:varchar(36);uniqueIndex" json:"job_uuid"`
	Title        string `gorm:"column:title;type:varchar(255);index" json:"title"`
	URL          string `gorm:"column:url;type:varchar(1024)" json:"url"`
	NotifyTarget string `gorm:"column:notify_target;type:varchar(128)" json:"notify_target"`
	Status       string `gorm:"column:status;type:varchar(20);index" json:"status"`
	ErrorMessage string `gorm:"column:error_message;type:varchar(500)" json:"error_message"`
}

// TableName 指定表名
func (DownloadJob) TableName() string {
	return "download_jobs"
}
