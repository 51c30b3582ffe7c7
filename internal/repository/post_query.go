package repository

import (
	"Creatr/internal/model"
	"time"

	"gorm.io/gorm"
)

// PostCursor 信息流游标，按 (published_at, id) 倒序定位
type PostCursor struct {
	PublishedAt time.Time
	ID          uint64
}

// After c 在扫描顺序中是否位于 o 之前，即发布时间更新
func (c PostCursor) After(o PostCursor) bool {
	if !c.PublishedAt.Equal(o.PublishedAt) {
		return c.PublishedAt.After(o.PublishedAt)
	}
	return c.ID > o.ID
}

// PublishedPostQuery 已发布帖子的索引扫描条件
type PublishedPostQuery struct {
	AuthorIDs        []uint64 // 为空表示不限作者
	ExcludeAuthorIDs []uint64
	PublishedSince   *time.Time
	Before           *PostCursor
	Limit            int // <= 0 表示不限条数
}

func (q *PublishedPostQuery) scope(db *gorm.DB) *gorm.DB {
	db = db.Where("status = ?", model.PostStatusPublished)
	if len(q.AuthorIDs) > 0 {
		db = db.Where("author_id IN ?", q.AuthorIDs)
	}
	if len(q.ExcludeAuthorIDs) > 0 {
		db = db.Where("author_id NOT IN ?", q.ExcludeAuthorIDs)
	}
	if q.PublishedSince != nil {
		db = db.Where("published_at >= ?", *q.PublishedSince)
	}
	if q.Before != nil {
		db = db.Where("(published_at < ? OR (published_at = ? AND id < ?))",
			q.Before.PublishedAt, q.Before.PublishedAt, q.Before.ID)
	}
	return db.Order("published_at DESC").Order("id DESC")
}
