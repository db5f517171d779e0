package util

import (
	"errors"
	"math"
	"strconv"
)

// Pager 分页参数，页码从 1 开始
type Pager struct {
	Page    int
	PerPage int
}

// NewPager 解析页码，非法或缺失时回落到第一页，过大的页码截断以免偏移量溢出
func NewPager(rawPage string, perPage int) Pager {
	if perPage < 1 {
		perPage = 20
	}
	maxPage := int64(math.MaxInt32 / perPage)
	// 超出 int64 范围时 ParseInt 返回边界值
	page, err := strconv.ParseInt(rawPage, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		page = 1
	}
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	return Pager{Page: int(page), PerPage: perPage}
}

func (p Pager) Limit() int {
	return p.PerPage
}

func (p Pager) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pages 总页数
func (p Pager) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}
