package kafka

import (
	"strconv"
	"time"
)

// canal 的变更类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

const canalTimeLayout = "2006-01-02 15:04:05"

// CanalMessage 定义了 Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 存储变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 存储变更前的数据
	Old []map[string]interface{} `json:"old"`

	SqlType   map[string]int    `json:"sqlType"`
	MysqlType map[string]string `json:"mysqlType"`
}

// StrToUint64 canal 的列值均为字符串，解析失败返回 0
func StrToUint64(v interface{}) uint64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	res, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return res
}

func StrToInt64(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	res, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return res
}

func StrToString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// StrToTime 解析 datetime 列，失败时返回 fallback
func StrToTime(v interface{}, fallback time.Time) time.Time {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	t, err := time.ParseInLocation(canalTimeLayout, s, time.Local)
	if err != nil {
		return fallback
	}
	return t
}
