package service

import (
	"Creatr/internal/model"
	"Creatr/internal/pkg/security"
	"Creatr/internal/repository"
	"context"
)

// IdentityService 将已校验的身份映射到用户记录
type IdentityService interface {
	Resolve(ctx context.Context, identity *security.Identity) (*model.User, error)
	RequireUser(ctx context.Context, identity *security.Identity) (*model.User, error)
}

type IdentityServiceImpl struct {
	userRepo repository.UserRepo
}

func NewIdentityService(userRepo repository.UserRepo) IdentityService {
	return &IdentityServiceImpl{userRepo: userRepo}
}

// Resolve 匿名或找不到用户时返回 (nil, nil)，优先按 subject 查找，其次按 token_identifier
func (s *IdentityServiceImpl) Resolve(ctx context.Context, identity *security.Identity) (*model.User, error) {
	if identity == nil {
		return nil, nil
	}

	if identity.Subject != "" {
		user, err := s.userRepo.GetUserByExternalID(ctx, identity.Subject)
		if err != nil || user != nil {
			return user, err
		}
	}

	if identity.TokenIdentifier != "" {
		return s.userRepo.GetUserByToken(ctx, identity.TokenIdentifier)
	}
	return nil, nil
}

func (s *IdentityServiceImpl) RequireUser(ctx context.Context, identity *security.Identity) (*model.User, error) {
	if identity == nil {
		return nil, ErrNotAuthenticated
	}
	user, err := s.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
