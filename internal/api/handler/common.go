package handler

import (
	"Creatr/internal/pkg/util"
	"Creatr/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryLimit 未传 limit 时返回 0，由服务层取默认值
func queryLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, service.ErrParamInvalid
	}
	return limit, nil
}

// paramID 解析路径中的 ID，0 视为非法
func paramID(c *gin.Context, name string) (uint64, error) {
	id, err := util.ParseUint64(c.Param(name))
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}
