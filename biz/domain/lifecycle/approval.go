package lifecycle

import "tuition-show/biz/infrastructure/consts"

// ApprovalStatus 教师/学生审核状态，管理员可在任意状态间切换
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch st := ApprovalStatus(s); st {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return st, nil
	default:
		return "", consts.ErrInvalidStatus
	}
}

// OrPending 未设置的状态按 pending 处理
func OrPending(s string) string {
	if s == "" {
		return string(ApprovalPending)
	}
	return s
}
