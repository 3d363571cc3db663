package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentID        primitive.ObjectID `bson:"studentId" json:"studentId"`
	TeacherID        primitive.ObjectID `bson:"teacherId,omitempty" json:"teacherId,omitempty"`
	Subject          string             `bson:"subject" json:"subject"`
	RemainingClasses int64              `bson:"remainingClasses" json:"remainingClasses"`
	PricePerClass    float64            `bson:"pricePerClass" json:"pricePerClass"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Query struct {
	StudentID string
	TeacherID string
}
