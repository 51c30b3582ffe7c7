package util

import (
	"strconv"
)

// ClampLimit limit <= 0 时取 def，超过 max 时取 max
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ParseUint64 解析路径/查询参数中的 ID
func ParseUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// Ptr 返回值的指针
func Ptr[T any](v T) *T {
	return &v
}
