package democlass

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

const CollectionName = "democlasses"

type IMongoMapper interface {
	Insert(ctx context.Context, d *DemoClass) error
	FindOne(ctx context.Context, id string) (*DemoClass, error)
	FindMany(ctx context.Context, q *Query) ([]*DemoClass, error)
	// Update 状态冲突返回 ErrStatusChanged，记录不存在返回 ErrNotFound
	Update(ctx context.Context, id string, upd *Update) (*DemoClass, error)
	Delete(ctx context.Context, id string) error
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
	Count(ctx context.Context, q *Query) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	LatestByStudent(ctx context.Context, studentID string) (*DemoClass, error)
	StudentIDsWithStatus(ctx context.Context, status string) ([]string, error)
}

type MongoMapper struct {
	coll *mongo.Collection
}

func NewMongoMapper(db *mongo.Database) *MongoMapper {
	log.Info("NewDemoClassMongoMapper collection: %s", CollectionName)
	return &MongoMapper{coll: db.Collection(CollectionName)}
}

func (m *MongoMapper) Insert(ctx context.Context, d *DemoClass) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
		d.CreatedAt = time.Now()
		d.UpdatedAt = d.CreatedAt
	}
	_, err := m.coll.InsertOne(ctx, d)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*DemoClass, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var d DemoClass
	err = m.coll.FindOne(ctx, bson.M{consts.ID: oid}).Decode(&d)
	switch {
	case err == nil:
		return &d, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindMany(ctx context.Context, q *Query) ([]*DemoClass, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	order := -1
	if q != nil && q.Ascending {
		order = 1
	}
	cur, err := m.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: consts.BookingDateAndTime, Value: order}}))
	if err != nil {
		return nil, err
	}
	res := make([]*DemoClass, 0)
	if err = cur.All(ctx, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *MongoMapper) Update(ctx context.Context, id string, upd *Update) (*DemoClass, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	set := bson.M{consts.UpdatedAt: time.Now()}
	if upd.TeacherID != nil {
		set[consts.TeacherID] = *upd.TeacherID
	}
	if upd.JoinLink != nil {
		set["joinLink"] = *upd.JoinLink
	}
	if upd.BookingDateAndTime != nil {
		set[consts.BookingDateAndTime] = *upd.BookingDateAndTime
	}
	if upd.TimeZone != nil {
		set["timeZone"] = *upd.TimeZone
	}
	if upd.Status != nil {
		set[consts.Status] = *upd.Status
	}

	filter := bson.M{consts.ID: oid}
	if upd.ExpectStatus != "" {
		filter[consts.Status] = upd.ExpectStatus
	}
	var d DemoClass
	err = m.coll.FindOneAndUpdate(ctx, filter, bson.M{consts.Set: set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&d)
	if err == nil {
		return &d, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if upd.ExpectStatus == "" {
		return nil, consts.ErrNotFound
	}
	// 区分记录不存在与状态已被并发修改
	n, err := m.coll.CountDocuments(ctx, bson.M{consts.ID: oid})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, consts.ErrNotFound
	}
	return nil, consts.ErrStatusChanged
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

func (m *MongoMapper) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return 0, consts.ErrInvalidObjectId
	}
	res, err := m.coll.DeleteMany(ctx, bson.M{consts.StudentID: oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *MongoMapper) Count(ctx context.Context, q *Query) (int64, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return 0, err
	}
	return m.coll.CountDocuments(ctx, filter)
}

func (m *MongoMapper) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cur, err := m.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + consts.Status},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	res := make(map[string]int64, len(rows))
	for _, r := range rows {
		res[r.Status] = r.Count
	}
	return res, nil
}

func (m *MongoMapper) LatestByStudent(ctx context.Context, studentID string) (*DemoClass, error) {
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var d DemoClass
	err = m.coll.FindOne(ctx, bson.M{consts.StudentID: oid},
		options.FindOne().SetSort(bson.D{{Key: consts.CreatedAt, Value: -1}})).Decode(&d)
	switch {
	case err == nil:
		return &d, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) StudentIDsWithStatus(ctx context.Context, status string) ([]string, error) {
	vals, err := m.coll.Distinct(ctx, consts.StudentID, bson.M{consts.Status: status})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(vals))
	for _, v := range vals {
		if oid, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}

func buildFilter(q *Query) (bson.M, error) {
	filter := bson.M{}
	if q == nil {
		return filter, nil
	}
	if q.StudentID != "" {
		oid, err := primitive.ObjectIDFromHex(q.StudentID)
		if err != nil {
			return nil, consts.ErrInvalidObjectId
		}
		filter[consts.StudentID] = oid
	}
	if q.TeacherID != "" {
		oid, err := primitive.ObjectIDFromHex(q.TeacherID)
		if err != nil {
			return nil, consts.ErrInvalidObjectId
		}
		filter[consts.TeacherID] = oid
	}
	if q.Status != "" {
		filter[consts.Status] = q.Status
	}
	return filter, nil
}
