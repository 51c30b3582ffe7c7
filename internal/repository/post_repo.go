package repository

import (
	"Creatr/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	ListPublished(ctx context.Context, q PublishedPostQuery) ([]*model.Post, error)
	ExistsPublished(ctx context.Context, q PublishedPostQuery) (bool, error)
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*model.Post, error)
	PublishPost(ctx context.Context, id uint64, publishedAt time.Time) (int64, error)
	RecordView(ctx context.Context, id uint64, day string) (int64, error)
	UpdateLikeCount(ctx context.Context, id uint64, count int64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublished 按发布时间倒序扫描已发布帖子
func (s *PostRepoImpl) ListPublished(ctx context.Context, q PublishedPostQuery) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	db := s.db.WithContext(ctx).Model(&model.Post{}).Scopes(q.scope)
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if err := db.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ExistsPublished 探测是否至少存在一条满足条件的帖子
func (s *PostRepoImpl) ExistsPublished(ctx context.Context, q PublishedPostQuery) (bool, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(q.scope).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// ListDueScheduled 到期待发布的草稿
func (s *PostRepoImpl) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_for IS NOT NULL AND scheduled_for <= ?", model.PostStatusDraft, now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// PublishPost 草稿转为已发布，status 与 published_at 同时写入
func (s *PostRepoImpl) PublishPost(ctx context.Context, id uint64, publishedAt time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND status = ?", id, model.PostStatusDraft).
		Updates(map[string]interface{}{
			"status":       model.PostStatusPublished,
			"published_at": publishedAt,
			"updated_at":   time.Now(),
		})
	return result.RowsAffected, result.Error
}

// RecordView 浏览数 +1，并累加当日统计
func (s *PostRepoImpl) RecordView(ctx context.Context, id uint64, day string) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Post{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		now := time.Now()
		stat := &model.DailyStat{PostID: id, Date: day, Views: 1, CreatedAt: now, UpdatedAt: now}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "post_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"views":      gorm.Expr("views + ?", 1),
				"updated_at": now,
			}),
		}).Create(stat).Error
	})
	return affected, err
}

func (s *PostRepoImpl) UpdateLikeCount(ctx context.Context, id uint64, count int64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("like_count", count).Error
}
