package util

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// maxCursorPositions 一个游标最多携带的扫描位置数
const maxCursorPositions = 2

// CursorPosition 按 (published_at, id) 倒序扫描时的定位点
type CursorPosition struct {
	PublishedAt time.Time
	ID          uint64
}

// EncodeCursor 将若干扫描位置编码为 Base64 字符串，时间精度为毫秒
// nil 位置表示对应的扫描尚未开始，编码为 [0, 0]
func EncodeCursor(positions ...*CursorPosition) string {
	values := make([]int64, 0, 2*len(positions))
	for _, p := range positions {
		if p == nil {
			values = append(values, 0, 0)
			continue
		}
		values = append(values, p.PublishedAt.UnixMilli(), int64(p.ID))
	}
	b, _ := json.Marshal(values)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor 解码 EncodeCursor 的结果，至少有一个位置非 nil
func DecodeCursor(cursor string) ([]*CursorPosition, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var values []int64
	if err = json.Unmarshal(b, &values); err != nil {
		return nil, ErrInvalidCursor
	}
	if len(values) == 0 || len(values)%2 != 0 || len(values) > 2*maxCursorPositions {
		return nil, ErrInvalidCursor
	}

	positions := make([]*CursorPosition, 0, len(values)/2)
	started := false
	for i := 0; i < len(values); i += 2 {
		at, id := values[i], values[i+1]
		switch {
		case at == 0 && id == 0:
			positions = append(positions, nil)
		case id <= 0:
			return nil, ErrInvalidCursor
		default:
			started = true
			positions = append(positions, &CursorPosition{PublishedAt: time.UnixMilli(at).UTC(), ID: uint64(id)})
		}
	}
	if !started {
		return nil, ErrInvalidCursor
	}
	return positions, nil
}
