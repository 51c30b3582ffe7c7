package service

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/model"
	"Creatr/internal/pkg/consts"
	"Creatr/internal/pkg/security"
	"Creatr/internal/pkg/util"
	"Creatr/internal/repository"
	"context"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
)

type PostActionService interface {
	ToggleLike(ctx context.Context, identity *security.Identity, postID uint64) (*dto.LikeStateDTO, error)
	HasUserLiked(ctx context.Context, identity *security.Identity, postID uint64) (*dto.LikeStateDTO, error)

	AddComment(ctx context.Context, identity *security.Identity, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, identity *security.Identity, commentID uint64) error
	GetPostComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
}

type PostActionServiceImpl struct {
	identity       IdentityService
	postActionRepo repository.PostActionRepo
	postRepo       repository.PostRepo
	userRepo       repository.UserRepo
}

func NewPostActionService(identity IdentityService, postActionRepo repository.PostActionRepo, postRepo repository.PostRepo, userRepo repository.UserRepo) PostActionService {
	return &PostActionServiceImpl{
		identity:       identity,
		postActionRepo: postActionRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
	}
}

// ToggleLike 已赞则取消，未赞则点赞
func (s *PostActionServiceImpl) ToggleLike(ctx context.Context, identity *security.Identity, postID uint64) (*dto.LikeStateDTO, error) {
	user, err := s.identity.RequireUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	if _, err = s.publishedPost(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postActionRepo.ToggleLike(ctx, user.ID, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.postActionRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStateDTO{Liked: liked, LikeCount: count}, nil
}

// HasUserLiked 匿名用户恒为未点赞
func (s *PostActionServiceImpl) HasUserLiked(ctx context.Context, identity *security.Identity, postID uint64) (*dto.LikeStateDTO, error) {
	post, err := s.publishedPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	state := &dto.LikeStateDTO{LikeCount: post.LikeCount}

	user, err := s.identity.Resolve(ctx, identity)
	if err != nil || user == nil {
		return state, err
	}
	state.Liked, err = s.postActionRepo.CheckLikeExists(ctx, user.ID, postID)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *PostActionServiceImpl) AddComment(ctx context.Context, identity *security.Identity, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	user, err := s.identity.RequireUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	content := util.SanitizeText(req.Content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if utf8.RuneCountInString(content) > consts.MaxCommentLength {
		return nil, ErrParamInvalid
	}

	if _, err = s.publishedPost(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:     req.PostID,
		AuthorID:   &user.ID,
		AuthorName: user.Name,
		Content:    content,
		Status:     model.CommentStatusApproved,
		CreatedAt:  time.Now(),
	}
	if user.Email != "" {
		comment.AuthorEmail = util.Ptr(user.Email)
	}
	if err = s.postActionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	out := toCommentDTO(comment)
	out.Author = toAuthor(user)
	return out, nil
}

// DeleteComment 评论作者或文章作者可删除
func (s *PostActionServiceImpl) DeleteComment(ctx context.Context, identity *security.Identity, commentID uint64) error {
	user, err := s.identity.RequireUser(ctx, identity)
	if err != nil {
		return err
	}

	comment, err := s.postActionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if comment.AuthorID == nil || *comment.AuthorID != user.ID {
		post, err := s.postRepo.GetPost(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post == nil || post.AuthorID != user.ID {
			return UnauthorizedError
		}
	}

	return s.postActionRepo.DeleteComment(ctx, commentID)
}

// GetPostComments 已通过审核的评论，最新在前
func (s *PostActionServiceImpl) GetPostComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	if _, err := s.publishedPost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.postActionRepo.GetCommentsByPostID(ctx, postID, model.CommentStatusApproved)
	if err != nil {
		return nil, err
	}

	authorIDs := lo.Uniq(lo.FilterMap(comments, func(c *model.Comment, _ int) (uint64, bool) {
		if c.AuthorID == nil {
			return 0, false
		}
		return *c.AuthorID, true
	}))
	users, err := s.userRepo.GetUserByIds(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	userMap := lo.Associate(users, func(u *model.User) (uint64, *model.User) { return u.ID, u })

	return lo.Map(comments, func(c *model.Comment, _ int) *dto.CommentDTO {
		out := toCommentDTO(c)
		if c.AuthorID != nil {
			if u, ok := userMap[*c.AuthorID]; ok {
				out.Author = toAuthor(u)
			}
		}
		return out
	}), nil
}

func (s *PostActionServiceImpl) publishedPost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished() {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}
