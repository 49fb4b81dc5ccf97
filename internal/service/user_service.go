package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns a user with their most recent posts preloaded.
func (s *UserService) GetProfile(ctx context.Context, id uint, postsLimit int) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id, postsLimit)
}
