package persistence

import (
	"context"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/convertor"
	"github.com/vidprocc/vidpro/ddd/infrastructure/database/dao"
)

type videoRepoImpl struct {
	dao *dao.VideoJobDAO
	cvt *convertor.VideoJobConvertor
}

func NewVideoJobRepo() repo.VideoJobRepo {
	return &videoRepoImpl{dao: dao.NewVideoJobDAO(), cvt: convertor.NewVideoJobConvertor()}
}

func (r *videoRepoImpl) Create(ctx context.Context, job *entity.VideoJobEntity) error {
	return r.dao.Create(ctx, r.cvt.ToPO(job))
}

func (r *videoRepoImpl) GetByUUID(ctx context.Context, jobUUID string) (*entity.VideoJobEntity, error) {
	poJob, err := r.dao.FindByJobUUID(ctx, jobUUID)
	if err != nil {
		return nil, err
	}
	return r.cvt.ToEntity(poJob), nil
}

func (r *videoRepoImpl) FindOldestWaiting(ctx context.Context) (*entity.VideoJobEntity, error) {
	poJob, err := r.dao.FindOldestWaiting(ctx, vo.VideoStatusWaiting.String())
	if err != nil {
		return nil, err
	}
	return r.cvt.ToEntity(poJob), nil
}

func (r *videoRepoImpl) ClaimStatus(ctx context.Context, jobUUID string, from, to vo.VideoStatus) (bool, error) {
	return r.dao.ClaimStatus(ctx, jobUUID, from.String(), to.String())
}

func (r *videoRepoImpl) SaveMetadata(ctx context.Context, jobUUID string, width, height int, duration float64, raw string) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{
		"width":    width,
		"height":   height,
		"duration": duration,
		"metadata": raw,
	})
}

func (r *videoRepoImpl) SetTranscodedPath(ctx context.Context, jobUUID, dir string) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{"transcoded_path": dir})
}

func (r *videoRepoImpl) SetScreenshotArtifacts(ctx context.Context, jobUUID string, screenshots []string, poster, thumbnail string) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{
		"screenshots": convertor.MarshalScreenshots(screenshots),
		"poster":      poster,
		"thumbnail":   thumbnail,
	})
}

func (r *videoRepoImpl) SetPreviewVideo(ctx context.Context, jobUUID, path string) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{"preview_video": path})
}

func (r *videoRepoImpl) SetM3U8Path(ctx context.Context, jobUUID, path string) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{"m3u8_path": path})
}

func (r *videoRepoImpl) MarkFinished(ctx context.Context, jobUUID, afterPath string, afterSize int64) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{
		"status":     vo.VideoStatusFinished.String(),
		"after_path": afterPath,
		"after_size": afterSize,
	})
}

func (r *videoRepoImpl) MarkError(ctx context.Context, jobUUID, message string) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{
		"status":        vo.VideoStatusError.String(),
		"error_message": message,
	})
}

func (r *videoRepoImpl) SetPause(ctx context.Context, jobUUID string, paused bool) error {
	return r.dao.UpdateFields(ctx, jobUUID, map[string]interface{}{"not_transcoding": paused})
}

func (r *videoRepoImpl) List(ctx context.Context, query repo.ListQuery) ([]*entity.VideoJobEntity, int64, error) {
	offset, limit := pageBounds(query)
	pos, total, err := r.dao.List(ctx, query.Status, query.Keyword, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	entities := make([]*entity.VideoJobEntity, 0, len(pos))
	for _, p := range pos {
		entities = append(entities, r.cvt.ToEntity(p))
	}
	return entities, total, nil
}

func (r *videoRepoImpl) Delete(ctx context.Context, jobUUID string) error {
	return r.dao.DeleteByJobUUID(ctx, jobUUID)
}
