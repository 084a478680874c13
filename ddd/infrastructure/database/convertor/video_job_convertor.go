package convertor

import (
	"encoding/json"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/po"
)

type VideoJobConvertor struct{}

func NewVideoJobConvertor() *VideoJobConvertor { return &VideoJobConvertor{} }

func (c *VideoJobConvertor) ToEntity(poJob *po.VideoJob) *entity.VideoJobEntity {
	if poJob == nil {
		return nil
	}

	e := entity.NewVideoJobEntity(poJob.JobUUID, poJob.Title, poJob.OriginalPath, poJob.OriginalSize, poJob.NotifyTarget)
	e.Rebuild(poJob.Id, vo.VideoStatus(poJob.Status), poJob.NotTranscoding, poJob.CreatedAt, poJob.UpdatedAt)
	e.RebuildMedia(poJob.Width, poJob.Height, poJob.Duration, poJob.Metadata)

	var screenshots []string
	if poJob.Screenshots != "" {
		// 历史记录里可能有损坏的JSON，忽略即可。
		_ = json.Unmarshal([]byte(poJob.Screenshots), &screenshots)
	}
	e.RebuildArtifacts(
		poJob.TranscodedPath,
		poJob.AfterPath,
		poJob.AfterSize,
		screenshots,
		poJob.Poster,
		poJob.Thumbnail,
		poJob.PreviewVideo,
		poJob.M3U8Path,
		poJob.ErrorMessage,
	)
	return e
}

func (c *VideoJobConvertor) ToPO(e *entity.VideoJobEntity) *po.VideoJob {
	return &po.VideoJob{
		BaseModel:      po.BaseModel{Id: e.ID(), CreatedAt: e.CreatedAt(), UpdatedAt: e.UpdatedAt()},
		JobUUID:        e.JobUUID(),
		Title:          e.Title(),
		Status:         e.Status().String(),
		NotTranscoding: e.NotTranscoding(),
		OriginalPath:   e.OriginalPath(),
		OriginalSize:   e.OriginalSize(),
		Width:          e.Width(),
		Height:         e.Height(),
		Duration:       e.Duration(),
		Metadata:       e.Metadata(),
		TranscodedPath: e.TranscodedPath(),
		AfterPath:      e.AfterPath(),
		AfterSize:      e.AfterSize(),
		Screenshots:    MarshalScreenshots(e.Screenshots()),
		Poster:         e.Poster(),
		Thumbnail:      e.Thumbnail(),
		PreviewVideo:   e.PreviewVideo(),
		M3U8Path:       e.M3U8Path(),
		ErrorMessage:   e.ErrorMessage(),
		NotifyTarget:   e.NotifyTarget(),
	}
}

// MarshalScreenshots 截图路径列表序列化为JSON数组，空列表存空串。
func MarshalScreenshots(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return ""
	}
	return string(data)
}
