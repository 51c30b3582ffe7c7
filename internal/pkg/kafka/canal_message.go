package kafka

import (
	"strconv"

	"github.com/samber/lo"
)

// Canal 事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

// CanalMessage Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`

	// Data 变更后的数据，DELETE 时为被删除的行
	Data []map[string]any `json:"data"`

	// Old 变更前被修改的字段
	Old []map[string]any `json:"old"`
}

// StrToUint64 Canal 的列值均为字符串，兼容数字类型
func StrToUint64(v any) uint64 {
	switch val := v.(type) {
	case string:
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		if val < 0 {
			return 0
		}
		return uint64(val)
	case uint64:
		return val
	case int64:
		if val < 0 {
			return 0
		}
		return uint64(val)
	default:
		return 0
	}
}

// columnIDs 取出所有行中某一列的 ID，去重并忽略 0
func (m *CanalMessage) columnIDs(column string) []uint64 {
	ids := lo.FilterMap(m.Data, func(row map[string]any, _ int) (uint64, bool) {
		id := StrToUint64(row[column])
		return id, id != 0
	})
	return lo.Uniq(ids)
}
