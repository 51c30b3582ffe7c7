package model

import (
	"time"
)

// DailyStatDateLayout 统计日期按 UTC 自然日记录
const DailyStatDateLayout = "2006-01-02"

type DailyStat struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_post_date,priority:1" json:"post_id"`
	Date      string    `gorm:"type:char(10);not null;uniqueIndex:idx_post_date,priority:2;index:idx_date" json:"date"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}
