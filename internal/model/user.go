package model

// User 用户表 — 对应 users
type User struct {
	ID      uint   `gorm:"primaryKey"                        json:"id"`
	Name    string `gorm:"type:varchar(100);not null"        json:"name"`
	Email   string `gorm:"type:varchar(100);not null;unique" json:"email"`
	TeamID  *uint  `gorm:"index"                             json:"team_id,omitempty"`
	IsAdmin bool   `gorm:"not null;default:false"            json:"is_admin"`

	// 关联
	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
