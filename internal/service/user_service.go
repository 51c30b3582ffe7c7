package service

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/model"
	"Creatr/internal/pkg/consts"
	"Creatr/internal/pkg/security"
	"Creatr/internal/pkg/util"
	"Creatr/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 20
)

type UserService interface {
	Store(ctx context.Context, identity *security.Identity) (*dto.CurrentUserDTO, error)
	GetCurrentUser(ctx context.Context, identity *security.Identity) (*dto.CurrentUserDTO, error)
	UpdateUsername(ctx context.Context, identity *security.Identity, username string) (*dto.CurrentUserDTO, error)
	GetByUsername(ctx context.Context, username string) (*dto.PublicProfileDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
	identity IdentityService
}

func NewUserService(userRepo repository.UserRepo, identity IdentityService) UserService {
	return &UserServiceImpl{userRepo: userRepo, identity: identity}
}

// Store 登录时同步用户，已存在则更新昵称与头像
func (s *UserServiceImpl) Store(ctx context.Context, identity *security.Identity) (*dto.CurrentUserDTO, error) {
	if identity == nil {
		return nil, ErrNotAuthenticated
	}

	user, err := s.identity.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	if user != nil {
		name := user.Name
		if identity.Name != "" {
			name = identity.Name
		}
		imageURL := user.ImageURL
		if identity.PictureURL != "" {
			imageURL = &identity.PictureURL
		}
		if err = s.userRepo.UpdateUserProfile(ctx, user.ID, name, imageURL); err != nil {
			return nil, err
		}
		user.Name = name
		user.ImageURL = imageURL
		user.LastActiveAt = time.Now()
		return toCurrentUser(user)
	}

	now := time.Now()
	user = &model.User{
		Name:            identity.Name,
		Email:           identity.Email,
		TokenIdentifier: identity.TokenIdentifier,
		ExternalID:      identity.Subject,
		CreatedAt:       now,
		LastActiveAt:    now,
	}
	if user.Name == "" {
		user.Name = consts.AnonymousAuthorName
	}
	if user.ExternalID == "" {
		user.ExternalID = identity.TokenIdentifier
	}
	if identity.PictureURL != "" {
		user.ImageURL = util.Ptr(identity.PictureURL)
	}

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// 并发登录已写入同一用户
		existing, rErr := s.identity.RequireUser(ctx, identity)
		if rErr != nil {
			log.ErrorContext(ctx, "store user conflict", "subject", identity.Subject, "err", rErr)
			return nil, rErr
		}
		return toCurrentUser(existing)
	}
	return toCurrentUser(user)
}

func (s *UserServiceImpl) GetCurrentUser(ctx context.Context, identity *security.Identity) (*dto.CurrentUserDTO, error) {
	user, err := s.identity.RequireUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return toCurrentUser(user)
}

// UpdateUsername 先校验格式，再校验长度，最后校验唯一性
func (s *UserServiceImpl) UpdateUsername(ctx context.Context, identity *security.Identity, username string) (*dto.CurrentUserDTO, error) {
	user, err := s.identity.RequireUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	if !util.IsUsernameFormat(username) {
		return nil, ErrUsernameFormat
	}
	if len(username) < usernameMinLength || len(username) > usernameMaxLength {
		return nil, ErrUsernameLength
	}

	if user.Username != nil && *user.Username == username {
		return toCurrentUser(user)
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != user.ID {
		return nil, ErrUsernameTaken
	}

	if err = s.userRepo.UpdateUsername(ctx, user.ID, username); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	user.Username = &username
	user.LastActiveAt = time.Now()
	return toCurrentUser(user)
}

// GetByUsername 公开主页，用户名为空或不存在时返回 nil
func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*dto.PublicProfileDTO, error) {
	if username == "" {
		return nil, nil
	}
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}

	profile := &dto.PublicProfileDTO{}
	if err = copier.Copy(profile, user); err != nil {
		return nil, err
	}
	return profile, nil
}

func toCurrentUser(user *model.User) (*dto.CurrentUserDTO, error) {
	out := &dto.CurrentUserDTO{}
	if err := copier.Copy(out, user); err != nil {
		return nil, err
	}
	return out, nil
}
