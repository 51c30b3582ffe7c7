package repository

import (
	"Creatr/internal/model"
	"context"

	"gorm.io/gorm"
)

type DailyStatRepo interface {
	GetDailyStats(ctx context.Context, postID uint64, fromDate, toDate string) ([]*model.DailyStat, error)
}

type DailyStatRepoImpl struct {
	db *gorm.DB
}

func NewDailyStatRepo(db *gorm.DB) DailyStatRepo {
	return &DailyStatRepoImpl{db: db}
}

// GetDailyStats 日期为 YYYY-MM-DD，闭区间，按日期升序
func (s *DailyStatRepoImpl) GetDailyStats(ctx context.Context, postID uint64, fromDate, toDate string) ([]*model.DailyStat, error) {
	stats := make([]*model.DailyStat, 0)
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND date >= ? AND date <= ?", postID, fromDate, toDate).
		Order("date ASC").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
