package service

import (
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/repository"
)

// UserAdminService 用户后台管理服务
type UserAdminService struct {
	userRepo repository.UserRepository
}

// NewUserAdminService 创建用户后台管理服务
func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

// List 用户列表
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 用户详情
func (s *UserAdminService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Delete 删除用户（软删除；管理员账号不可删）
func (s *UserAdminService) Delete(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.IsAdmin() {
		return ErrInvalidInput
	}
	return s.userRepo.Delete(id)
}
