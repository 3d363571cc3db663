package catalog

import "context"

// Subject 对应 subjects 表
type Subject struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Category string `db:"category" json:"category,omitempty"`
}

type IMapper interface {
	ListSubjects(ctx context.Context, category string) ([]*Subject, error)
}

// 未配置 MySQL 时使用的内置科目
var defaultSubjects = []*Subject{
	{ID: 1, Name: "Mathematics", Category: "science"},
	{ID: 2, Name: "Physics", Category: "science"},
	{ID: 3, Name: "Chemistry", Category: "science"},
	{ID: 4, Name: "Biology", Category: "science"},
	{ID: 5, Name: "Computer Science", Category: "science"},
	{ID: 6, Name: "English", Category: "language"},
	{ID: 7, Name: "Urdu", Category: "language"},
	{ID: 8, Name: "Arabic", Category: "language"},
	{ID: 9, Name: "Quran", Category: "religion"},
	{ID: 10, Name: "Islamiat", Category: "religion"},
	{ID: 11, Name: "Economics", Category: "commerce"},
	{ID: 12, Name: "Accounting", Category: "commerce"},
}

type StaticMapper struct{}

func (StaticMapper) ListSubjects(_ context.Context, category string) ([]*Subject, error) {
	if category == "" {
		return defaultSubjects, nil
	}
	res := make([]*Subject, 0)
	for _, s := range defaultSubjects {
		if s.Category == category {
			res = append(res, s)
		}
	}
	return res, nil
}
