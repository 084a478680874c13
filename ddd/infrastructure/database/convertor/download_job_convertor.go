package convertor

import (
	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/po"
)

type DownloadJobConvertor struct{}

func NewDownloadJobConvertor() *DownloadJobConvertor { return &DownloadJobConvertor{} }

func (c *DownloadJobConvertor) ToEntity(poJob *po.DownloadJob) *entity.DownloadJobEntity {
	if poJob == nil {
		return nil
	}
	return entity.RebuildDownloadJobEntity(
		poJob.Id,
		poJob.JobUUID,
		poJob.Title,
		poJob.URL,
		poJob.NotifyTarget,
		vo.DownloadStatus(poJob.Status),
		poJob.ErrorMessage,
		poJob.CreatedAt,
		poJob.UpdatedAt,
	)
}

func (c *DownloadJobConvertor) ToPO(e *entity.DownloadJobEntity) *po.DownloadJob {
	return &po.DownloadJob{
		BaseModel:    po.BaseModel{Id: e.ID(), CreatedAt: e.CreatedAt(), UpdatedAt: e.UpdatedAt()},
		JobUUID:      e.JobUUID(),
		Title:        e.Title(),
		URL:          e.URL(),
		NotifyTarget: e.NotifyTarget(),
		Status:       e.Status().String(),
		ErrorMessage: e.ErrorMessage(),
	}
}
