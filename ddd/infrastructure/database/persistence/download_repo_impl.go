package persistence

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/convertor"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/dao"
)

type downloadRepoImpl struct {
	dao *dao.DownloadJobDAO
	cvt *convertor.DownloadJobConvertor
}

func NewDownloadJobRepo() repo.DownloadJobRepo {
	return &downloadRepoImpl{dao: dao.NewDownloadJobDAO(), cvt: convertor.NewDownloadJobConvertor()}
}

func (r *downloadRepoImpl) Create(ctx context.Context, job *entity.DownloadJobEntity) error {
	return r.dao.Create(ctx, r.cvt.ToPO(job))
}

func (r *downloadRepoImpl) GetByUUID(ctx context.Context, jobUUID string) (*entity.DownloadJobEntity, error) {
	poJob, err := r.dao.FindByJobUUID(ctx, jobUUID)
	if err != nil {
		return nil, err
	}
	return r.cvt.ToEntity(poJob), nil
}

func (r *downloadRepoImpl) FindOldestByStatus(ctx context.Context, status vo.DownloadStatus) (*entity.DownloadJobEntity, error) {
	poJob, err := r.dao.FindOldestByStatus(ctx, status.String())
	if err != nil {
		return nil, err
	}
	return r.cvt.ToEntity(poJob), nil
}

func (r *downloadRepoImpl) ClaimStatus(ctx context.Context, jobUUID string, from, to vo.DownloadStatus) (bool, error) {
	return r.dao.ClaimStatus(ctx, jobUUID, from.String(), to.String())
}

func (r *downloadRepoImpl) SetStatus(ctx context.Context, jobUUID string, status vo.DownloadStatus, errorMessage string) error {
	return r.dao.UpdateStatus(ctx, jobUUID, status.String(), errorMessage)
}

func (r *downloadRepoImpl) List(ctx context.Context, query repo.ListQuery) ([]*entity.DownloadJobEntity, int64, error) {
	offset, limit := pageBounds(query)
	pos, total, err := r.dao.List(ctx, query.Status, query.Keyword, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	entities := make([]*entity.DownloadJobEntity, 0, len(pos))
	for _, p := range pos {
		entities = append(entities, r.cvt.ToEntity(p))
	}
	return entities, total, nil
}

func (r *downloadRepoImpl) Delete(ctx context.Context, jobUUID string) error {
	return r.dao.DeleteByJobUUID(ctx, jobUUID)
}

func pageBounds(query repo.ListQuery) (offset, limit int) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	size := query.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return (page - 1) * size, size
}
