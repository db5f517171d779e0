package util

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}

// RuneLen 按字符而非字节计算长度
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ParseIDs 解析逗号分隔的 ID 列表，去重并保持顺序，任一非法则整体失败
func ParseIDs(raw string) ([]uint64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	seen := make(map[uint64]struct{})
	ids := make([]uint64, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, false
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, len(ids) > 0
}

// ParseID 解析路径参数中的 ID
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
