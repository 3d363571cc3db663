package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message 课程内的留言，按 createdAt 升序展示
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CourseID       primitive.ObjectID `bson:"courseId" json:"courseId"`
	SenderID       primitive.ObjectID `bson:"senderId" json:"senderId"`
	Message        string             `bson:"message,omitempty" json:"message,omitempty"`
	AttachmentUrl  string             `bson:"attachmentUrl,omitempty" json:"attachmentUrl,omitempty"`
	AttachmentType string             `bson:"attachmentType,omitempty" json:"attachmentType,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
