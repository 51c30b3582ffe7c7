package service

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/model"
	"Creatr/internal/pkg/util"
	"Creatr/internal/repository"
	"context"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

const excerptLength = 160

// loadAuthors 一次批量查询帖子作者
func loadAuthors(ctx context.Context, userRepo repository.UserRepo, posts []*model.Post) (map[uint64]*model.User, error) {
	ids := lo.Uniq(lo.Map(posts, func(p *model.Post, _ int) uint64 { return p.AuthorID }))
	users, err := userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	return lo.Associate(users, func(u *model.User) (uint64, *model.User) { return u.ID, u }), nil
}

// toFeedPosts 补全作者信息，作者不存在的帖子直接丢弃，保持原有顺序
func toFeedPosts(ctx context.Context, userRepo repository.UserRepo, posts []*model.Post) ([]*dto.FeedPostDTO, error) {
	out := make([]*dto.FeedPostDTO, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	authors, err := loadAuthors(ctx, userRepo, posts)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		author, ok := authors[p.AuthorID]
		if !ok {
			continue
		}
		item := &dto.FeedPostDTO{}
		if err = copier.Copy(item, p); err != nil {
			return nil, err
		}
		item.Excerpt = excerpt(p.Content)
		item.Author = toAuthor(author)
		out = append(out, item)
	}
	return out, nil
}

func toAuthor(u *model.User) *dto.AuthorDTO {
	return &dto.AuthorDTO{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		ImageURL: u.ImageURL,
	}
}

func excerpt(content string) string {
	text := []rune(util.SanitizeText(content))
	if len(text) <= excerptLength {
		return string(text)
	}
	return string(text[:excerptLength]) + "..."
}
