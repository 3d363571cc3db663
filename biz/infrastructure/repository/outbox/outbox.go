package outbox

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 邮件类型
const (
	KindDemoConfirmation   = "demo_confirmation"
	KindDemoOperatorNotice = "demo_operator_notice"
	KindDemoStatus         = "demo_status"
	KindOtp                = "otp"
)

// 投递状态；sending 表示已被某个投递方认领，租约过期前其他投递方不会重复认领
const (
	StatusPending = "pending" // 仅出现在旧记录中
	StatusSending = "sending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusExpired = "expired"
)

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Kind      string             `bson:"kind" json:"kind"`
	To        []string           `bson:"to" json:"to"`
	Subject   string             `bson:"subject" json:"subject"`
	Body      string             `bson:"body" json:"body"`
	Status    string             `bson:"status" json:"status"`
	Attempts  int64              `bson:"attempts" json:"attempts"`
	LastError string             `bson:"lastError,omitempty" json:"lastError,omitempty"`
	RefID     string             `bson:"refId,omitempty" json:"refId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
