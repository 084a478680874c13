package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vidprocc/vidpro/ddd/infrastructure/database/po"
	"github.com/vidprocc/vidpro/internal/resource"
)

type VideoJobDAO struct {
	db *gorm.DB
}

func NewVideoJobDAO() *VideoJobDAO {
	return &VideoJobDAO{db: resource.DefaultMysqlResource().MainDB()}
}

func (d *VideoJobDAO) Create(ctx context.Context, job *po.VideoJob) error {
	return d.db.WithContext(ctx).Create(job).Error
}

func (d *VideoJobDAO) FindByJobUUID(ctx context.Context, jobUUID string) (*po.VideoJob, error) {
	var job po.VideoJob
	if err := d.db.WithContext(ctx).Where("job_uuid = ?", jobUUID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// FindOldestWaiting 取最早创建的等待任务，被暂停的记录跳过。
func (d *VideoJobDAO) FindOldestWaiting(ctx context.Context, waitingStatus string) (*po.VideoJob, error) {
	var job po.VideoJob
	err := d.db.WithContext(ctx).
		Where("status = ? AND not_transcoding = ?", waitingStatus, false).
		Order("created_at ASC, id ASC").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// ClaimStatus 条件更新：只有当前状态仍为from时才写入to。
func (d *VideoJobDAO) ClaimStatus(ctx context.Context, jobUUID, from, to string) (bool, error) {
	res := d.db.WithContext(ctx).
		Model(&po.VideoJob{}).
		Where("job_uuid = ? AND status = ?", jobUUID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (d *VideoJobDAO) UpdateFields(ctx context.Context, jobUUID string, fields map[string]interface{}) error {
	return d.db.WithContext(ctx).
		Model(&po.VideoJob{}).
		Where("job_uuid = ?", jobUUID).
		Updates(fields).Error
}

func (d *VideoJobDAO) List(ctx context.Context, status, keyword string, offset, limit int) ([]*po.VideoJob, int64, error) {
	q := d.db.WithContext(ctx).Model(&po.VideoJob{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if keyword != "" {
		q = q.Where("title LIKE ?", "%"+keyword+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobs []*po.VideoJob
	if err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (d *VideoJobDAO) DeleteByJobUUID(ctx context.Context, jobUUID string) error {
	return d.db.WithContext(ctx).Where("job_uuid = ?", jobUUID).Delete(&po.VideoJob{}).Error
}
