package vo

// AttachmentType 通知附件类型
type AttachmentType string

const (
	AttachmentVideo AttachmentType = "video"
	AttachmentPhoto AttachmentType = "photo"
)

// Attachment 完成通知中携带的一个产物描述
type Attachment struct {
	Type     AttachmentType `json:"type"`
	Path     string         `json:"path"`
	Caption  string         `json:"caption,omitempty"`
	Duration float64        `json:"duration,omitempty"`
	Width    int            `json:"width,omitempty"`
	Height   int            `json:"height,omitempty"`
}
