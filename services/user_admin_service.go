package services

import (
	"context"
	"fmt"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/repository"
)

// UserAdminService lets admins list and block accounts of any role.
type UserAdminService struct {
	Users *repository.UserRepository
}

func NewUserAdminService(users *repository.UserRepository) *UserAdminService {
	return &UserAdminService{Users: users}
}

func (s *UserAdminService) List(ctx context.Context, p entity.Principal) ([]entity.User, error) {
	if err := Authorize(p, ActionManageUsers, nil); err != nil {
		return nil, err
	}
	return s.Users.List(ctx)
}

func (s *UserAdminService) Block(ctx context.Context, p entity.Principal, userID uint) (*entity.User, error) {
	if err := Authorize(p, ActionManageUsers, nil); err != nil {
		return nil, err
	}
	if p.ID == userID {
		return nil, fmt.Errorf("admins cannot block themselves: %w", ErrInvalidInput)
	}
	return s.setBlocked(ctx, userID, true)
}

func (s *UserAdminService) Unblock(ctx context.Context, p entity.Principal, userID uint) (*entity.User, error) {
	if err := Authorize(p, ActionManageUsers, nil); err != nil {
		return nil, err
	}
	return s.setBlocked(ctx, userID, false)
}

func (s *UserAdminService) setBlocked(ctx context.Context, userID uint, blocked bool) (*entity.User, error) {
	n, err := s.Users.SetBlocked(ctx, userID, blocked)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %d", userID)
	}
	return u, nil
}
