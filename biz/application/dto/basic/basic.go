package basic

// UserMeta 会话中的用户信息，由 JWT 解析得到
type UserMeta struct {
	UserId string `json:"userId" mapstructure:"userId"`
	Role   string `json:"role" mapstructure:"role"`
	Email  string `json:"email,omitempty" mapstructure:"email"`
}

func (m *UserMeta) GetUserId() string {
	if m == nil {
		return ""
	}
	return m.UserId
}

func (m *UserMeta) GetRole() string {
	if m == nil {
		return ""
	}
	return m.Role
}

type PaginationOptions struct {
	Page  *int64 `json:"page,omitempty" query:"page"`
	Limit *int64 `json:"limit,omitempty" query:"limit"`
}
