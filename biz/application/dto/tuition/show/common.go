package show

import (
	"net/mail"
	"net/url"
	"strings"
	"time"

	"tuition-show/biz/infrastructure/consts"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// IdReq 路径参数 /:id
type IdReq struct {
	Id string `path:"id" json:"id"`
}

type EmailReq struct {
	Email string `json:"email"`
}

func (r *EmailReq) Validate() error {
	return validateEmail(r.Email)
}

// Person 关联用户的精简信息
type Person struct {
	Id       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Role     string `json:"role,omitempty"`
}

// 预约时间支持的格式
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate 解析前端提交的日期，datetime-local 与纯日期按 UTC 处理
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, consts.Validation("Invalid date: %s", s)
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return consts.Required("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return consts.Validation("Invalid email: %s", email)
	}
	return nil
}

func validateURL(field, s string) error {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return consts.Validation("%s must be an absolute http(s) URL", field)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
