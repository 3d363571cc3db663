package page

import (
	"github.com/spf13/cast"

	"tuition-show/biz/application/dto/basic"
)

const (
	defaultLimit = int64(20)
	maxLimit     = int64(100)
)

// ParsePageOpt 解析分页参数，未传入时返回 0, 0 表示不分页
func ParsePageOpt(p *basic.PaginationOptions) (skip int64, limit int64) {
	if p == nil || p.Page == nil {
		return 0, 0
	}
	page := *p.Page
	if page < 1 {
		page = 1
	}
	limit = defaultLimit
	if p.Limit != nil && *p.Limit > 0 {
		limit = min(*p.Limit, maxLimit)
	}
	return (page - 1) * limit, limit
}

// FromQuery 从查询字符串构造分页参数，非法值视为未传入
func FromQuery(page, limit string) *basic.PaginationOptions {
	if page == "" {
		return nil
	}
	p := cast.ToInt64(page)
	if p <= 0 {
		return nil
	}
	opts := &basic.PaginationOptions{Page: &p}
	if l := cast.ToInt64(limit); l > 0 {
		opts.Limit = &l
	}
	return opts
}
