package model

import "time"

type Follow struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	FollowerID  uint64    `gorm:"not null;uniqueIndex:idx_relationship,priority:1" json:"follower_id"`
	FollowingID uint64    `gorm:"not null;uniqueIndex:idx_relationship,priority:2;index:idx_following_id" json:"following_id"`
	CreatedAt   time.Time `gorm:"index:idx_created_at" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
