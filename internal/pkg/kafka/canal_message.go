package kafka

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Canal 事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

// CanalMessage Canal 推送到 Kafka 的 flat message
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`

	// Data 变更后的行
	Data []map[string]any `json:"data"`
	// Old 变更前的行，仅 UPDATE 有值
	Old []map[string]any `json:"old"`
}

// StrToUint64 Canal 默认把列值序列化成字符串，这里兼容数字
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
	case json.Number:
		n, err := strconv.ParseUint(val.String(), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
