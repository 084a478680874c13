package po

// Setting 全局转码配置，单行记录。
type Setting struct {
	BaseModel
	Resolution        string `gorm:"column:resolution;type:varchar(10)" json:"resolution"`
	BitrateKbps       int    `gorm:"column:bitrate_kbps;type:int" json:"bitrate_kbps"`
	FrameRate         int    `gorm:"column:frame_rate;type:int" json:"frame_rate"`
	WatermarkEnabled  bool   `gorm:"column:watermark_enabled;default:false" json:"watermark_enabled"`
	WatermarkImage    string `gorm:"column:watermark_image;type:varchar(512)" json:"watermark_image"`
	WatermarkPosition string `gorm:"column:watermark_position;type:varchar(20)" json:"watermark_position"`
	ScreenshotCount   int    `gorm:"column:screenshot_count;type:int" json:"screenshot_count"`
	PreviewEnabled    bool   `gorm:"column:preview_enabled;default:true" json:"preview_enabled"`
	PreviewWidth      int    `gorm:"column:preview_width;type:int" json:"preview_width"`
	PreviewHeight     int    `gorm:"column:preview_height;type:int" json:"preview_height"`
	PosterWidth       int    `gorm:"column:poster_width;type:int" json:"poster_width"`
	PosterHeight      int    `gorm:"column:poster_height;type:int" json:"poster_height"`
	MosaicEnabled     bool   `gorm:"column:mosaic_enabled;default:true" json:"mosaic_enabled"`
	HLSEnabled        bool   `gorm:"column:hls_enabled;default:false" json:"hls_enabled"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
