package course

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/util/log"
)

const MessageCollectionName = "coursemessages"

type IMessageMongoMapper interface {
	Insert(ctx context.Context, msg *Message) error
	FindOne(ctx context.Context, id string) (*Message, error)
	FindByCourse(ctx context.Context, courseID string) ([]*Message, error)
	Delete(ctx context.Context, id string) error
	DeleteByCourse(ctx context.Context, courseID string) (int64, error)
}

type MessageMongoMapper struct {
	coll *mongo.Collection
}

func NewMessageMongoMapper(db *mongo.Database) *MessageMongoMapper {
	log.Info("NewMessageMongoMapper collection: %s", MessageCollectionName)
	return &MessageMongoMapper{coll: db.Collection(MessageCollectionName)}
}

func (m *MessageMongoMapper) Insert(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
		msg.CreatedAt = time.Now()
	}
	_, err := m.coll.InsertOne(ctx, msg)
	return err
}

func (m *MessageMongoMapper) FindOne(ctx context.Context, id string) (*Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var msg Message
	err = m.coll.FindOne(ctx, bson.M{consts.ID: oid}).Decode(&msg)
	switch {
	case err == nil:
		return &msg, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MessageMongoMapper) FindByCourse(ctx context.Context, courseID string) ([]*Message, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	cur, err := m.coll.Find(ctx, bson.M{consts.CourseID: oid},
		options.Find().SetSort(bson.D{{Key: consts.CreatedAt, Value: 1}}))
	if err != nil {
		return nil, err
	}
	res := make([]*Message, 0)
	if err = cur.All(ctx, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *MessageMongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{consts.ID: oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *MessageMongoMapper) DeleteByCourse(ctx context.Context, courseID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return 0, consts.ErrInvalidObjectId
	}
	res, err := m.coll.DeleteMany(ctx, bson.M{consts.CourseID: oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
