package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vidprocc/vidpro/ddd/infrastructure/database/po"
	"github.com/vidprocc/vidpro/internal/resource"
)

type DownloadJobDAO struct {
	db *gorm.DB
}

func NewDownloadJobDAO() *DownloadJobDAO {
	return &DownloadJobDAO{db: resource.DefaultMysqlResource().MainDB()}
}

func (d *DownloadJobDAO) Create(ctx context.Context, job *po.DownloadJob) error {
	return d.db.WithContext(ctx).Create(job).Error
}

func (d *DownloadJobDAO) FindByJobUUID(ctx context.Context, jobUUID string) (*po.DownloadJob, error) {
	var job po.DownloadJob
	if err := d.db.WithContext(ctx).Where("job_uuid = ?", jobUUID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// FindOldestByStatus 按创建时间升序取一条，无记录时返回nil。
func (d *DownloadJobDAO) FindOldestByStatus(ctx context.Context, status string) (*po.DownloadJob, error) {
	var job po.DownloadJob
	err := d.db.WithContext(ctx).
		Where("status = ?", status).
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
// RowsAffected为1表示抢占成功。
func (d *DownloadJobDAO) ClaimStatus(ctx context.Context, jobUUID, from, to string) (bool, error) {
	res := d.db.WithContext(ctx).
		Model(&po.DownloadJob{}).
		Where("job_uuid = ? AND status = ?", jobUUID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (d *DownloadJobDAO) UpdateStatus(ctx context.Context, jobUUID, status, errorMessage string) error {
	return d.db.WithContext(ctx).
		Model(&po.DownloadJob{}).
		Where("job_uuid = ?", jobUUID).
		Updates(map[string]interface{}{"status": status, "error_message": errorMessage}).Error
}

func (d *DownloadJobDAO) List(ctx context.Context, status, keyword string, offset, limit int) ([]*po.DownloadJob, int64, error) {
	q := d.db.WithContext(ctx).Model(&po.DownloadJob{})
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
	var jobs []*po.DownloadJob
	if err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (d *DownloadJobDAO) DeleteByJobUUID(ctx context.Context, jobUUID string) error {
	return d.db.WithContext(ctx).Where("job_uuid = ?", jobUUID).Delete(&po.DownloadJob{}).Error
}
