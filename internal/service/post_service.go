package service

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/model"
	"Creatr/internal/pkg/consts"
	"Creatr/internal/pkg/security"
	"Creatr/internal/pkg/util"
	"Creatr/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

const publishBatchSize = 100

type PostService interface {
	CreatePost(ctx context.Context, identity *security.Identity, req *dto.CreatePostDTO) (*dto.PostDTO, error)
	PublishDuePosts(ctx context.Context, now time.Time) (int, error)
	GetPublishedPost(ctx context.Context, username string, postID uint64) (*dto.PostDTO, error)
	IncrementViewCount(ctx context.Context, postID uint64) error
	GetPostStats(ctx context.Context, identity *security.Identity, postID uint64, days int) (*dto.PostStatsDTO, error)
}

type PostServiceImpl struct {
	identity      IdentityService
	postRepo      repository.PostRepo
	userRepo      repository.UserRepo
	dailyStatRepo repository.DailyStatRepo
	now           func() time.Time
}

func NewPostService(identity IdentityService, postRepo repository.PostRepo, userRepo repository.UserRepo, dailyStatRepo repository.DailyStatRepo) PostService {
	return &PostServiceImpl{
		identity:      identity,
		postRepo:      postRepo,
		userRepo:      userRepo,
		dailyStatRepo: dailyStatRepo,
		now:           time.Now,
	}
}

// CreatePost 立即发布、定时发布或保存草稿
func (s *PostServiceImpl) CreatePost(ctx context.Context, identity *security.Identity, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	author, err := s.identity.RequireUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	title := util.SanitizeText(req.Title)
	content := util.SanitizeHTML(req.Content)
	if title == "" || content == "" {
		return nil, ErrParamInvalid
	}
	if req.PublishNow && req.ScheduledFor != nil {
		return nil, ErrParamInvalid
	}

	now := s.now().UTC()
	post := &model.Post{
		Title:         title,
		Content:       content,
		Status:        model.PostStatusDraft,
		AuthorID:      author.ID,
		Tags:          normalizeTags(req.Tags),
		Category:      req.Category,
		FeaturedImage: req.FeaturedImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch {
	case req.PublishNow:
		post.Status = model.PostStatusPublished
		post.PublishedAt = &now
	case req.ScheduledFor != nil:
		if !req.ScheduledFor.After(now) {
			return nil, ErrPostScheduleTime
		}
		at := req.ScheduledFor.UTC()
		post.ScheduledFor = &at
	}

	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post, author)
}

// PublishDuePosts 发布已到期的定时草稿，发布时间取计划时间，返回发布数量
func (s *PostServiceImpl) PublishDuePosts(ctx context.Context, now time.Time) (int, error) {
	published := 0
	for {
		due, err := s.postRepo.ListDueScheduled(ctx, now, publishBatchSize)
		if err != nil {
			return published, err
		}

		for _, p := range due {
			affected, err := s.postRepo.PublishPost(ctx, p.ID, *p.ScheduledFor)
			if err != nil {
				log.ErrorContext(ctx, "publish scheduled post failed", "post_id", p.ID, "err", err)
				return published, err
			}
			published += int(affected)
		}

		if len(due) < publishBatchSize {
			return published, nil
		}
	}
}

// GetPublishedPost 文章需已发布且作者用户名匹配
func (s *PostServiceImpl) GetPublishedPost(ctx context.Context, username string, postID uint64) (*dto.PostDTO, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrPostNotFound
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished() || post.AuthorID != author.ID {
		return nil, ErrPostNotFound
	}
	return toPostDTO(post, author)
}

// IncrementViewCount 浏览数 +1 并累加当日（UTC）统计
func (s *PostServiceImpl) IncrementViewCount(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || !post.IsPublished() {
		return ErrPostNotFound
	}

	_, err = s.postRepo.RecordView(ctx, postID, s.now().UTC().Format(model.DailyStatDateLayout))
	return err
}

// GetPostStats 作者查看近 days 天的每日浏览量，缺失的日期补 0
func (s *PostServiceImpl) GetPostStats(ctx context.Context, identity *security.Identity, postID uint64, days int) (*dto.PostStatsDTO, error) {
	user, err := s.identity.RequireUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	days = util.ClampLimit(days, consts.DefaultStatsDays, consts.MaxStatsDays)

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != user.ID {
		return nil, UnauthorizedError
	}

	today := s.now().UTC()
	from := today.AddDate(0, 0, -(days - 1))
	stats, err := s.dailyStatRepo.GetDailyStats(ctx, postID,
		from.Format(model.DailyStatDateLayout), today.Format(model.DailyStatDateLayout))
	if err != nil {
		return nil, err
	}
	byDate := lo.Associate(stats, func(st *model.DailyStat) (string, int64) { return st.Date, st.Views })

	out := &dto.PostStatsDTO{PostID: postID, Days: make([]*dto.DailyStatDTO, 0, days)}
	for d := 0; d < days; d++ {
		date := from.AddDate(0, 0, d).Format(model.DailyStatDateLayout)
		views := byDate[date]
		out.TotalViews += views
		out.Days = append(out.Days, &dto.DailyStatDTO{Date: date, Views: views})
	}
	return out, nil
}

func normalizeTags(tags []string) []string {
	cleaned := lo.FilterMap(tags, func(t string, _ int) (string, bool) {
		t = strings.ToLower(strings.TrimSpace(util.SanitizeText(t)))
		return t, t != ""
	})
	return lo.Uniq(cleaned)
}

func toPostDTO(post *model.Post, author *model.User) (*dto.PostDTO, error) {
	out := &dto.PostDTO{}
	if err := copier.Copy(out, post); err != nil {
		return nil, err
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if author != nil {
		out.Author = toAuthor(author)
	}
	return out, nil
}
