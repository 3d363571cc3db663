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

const CollectionName = "courses"

type IMongoMapper interface {
	Insert(ctx context.Context, c *Course) error
	FindOne(ctx context.Context, id string) (*Course, error)
	FindMany(ctx context.Context, q *Query) ([]*Course, error)
	// Consume 原子扣减一节课，余量为 0 时返回 ErrNoClassesRemaining
	Consume(ctx context.Context, id string) (*Course, error)
	Delete(ctx context.Context, id string) error
}

type MongoMapper struct {
	coll *mongo.Collection
}

func NewMongoMapper(db *mongo.Database) *MongoMapper {
	log.Info("NewCourseMongoMapper collection: %s", CollectionName)
	return &MongoMapper{coll: db.Collection(CollectionName)}
}

func (m *MongoMapper) Insert(ctx context.Context, c *Course) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = time.Now()
		c.UpdatedAt = c.CreatedAt
	}
	_, err := m.coll.InsertOne(ctx, c)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Course
	err = m.coll.FindOne(ctx, bson.M{consts.ID: oid}).Decode(&c)
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindMany(ctx context.Context, q *Query) ([]*Course, error) {
	filter := bson.M{}
	if q != nil && q.StudentID != "" {
		oid, err := primitive.ObjectIDFromHex(q.StudentID)
		if err != nil {
			return nil, consts.ErrInvalidObjectId
		}
		filter[consts.StudentID] = oid
	}
	if q != nil && q.TeacherID != "" {
		oid, err := primitive.ObjectIDFromHex(q.TeacherID)
		if err != nil {
			return nil, consts.ErrInvalidObjectId
		}
		filter[consts.TeacherID] = oid
	}
	cur, err := m.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: consts.CreatedAt, Value: -1}}))
	if err != nil {
		return nil, err
	}
	res := make([]*Course, 0)
	if err = cur.All(ctx, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *MongoMapper) Consume(ctx context.Context, id string) (*Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Course
	err = m.coll.FindOneAndUpdate(ctx,
		bson.M{consts.ID: oid, consts.RemainingClasses: bson.M{consts.Gt: 0}},
		bson.M{
			consts.Inc: bson.M{consts.RemainingClasses: -1},
			consts.Set: bson.M{consts.UpdatedAt: time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	n, err := m.coll.CountDocuments(ctx, bson.M{consts.ID: oid})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, consts.ErrNotFound
	}
	return nil, consts.ErrNoClassesRemaining
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
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
