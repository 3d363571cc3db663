package outbox

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

const CollectionName = "outbox"

type IMongoMapper interface {
	Insert(ctx context.Context, msg *Message) error
	MarkSent(ctx context.Context, id primitive.ObjectID) error
	// MarkFailed 记录失败原因并累加尝试次数
	MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) error
	// Claim 原子认领一条待重投记录并置为 sending：失败的记录，或认领时间早于 staleBefore 的 pending/sending 记录。
	// 无可认领记录时返回 consts.ErrNotFound
	Claim(ctx context.Context, maxAttempts int64, staleBefore time.Time, exclude []primitive.ObjectID) (*Message, error)
	// Expire 将创建时间早于 before 的未投递记录置为 expired，refID 为空时不限
	Expire(ctx context.Context, kind, refID string, before time.Time) (int64, error)
	FindByStatus(ctx context.Context, status string, skip, limit int64) ([]*Message, error)
}

type MongoMapper struct {
	coll *mongo.Collection
}

func NewMongoMapper(db *mongo.Database) *MongoMapper {
	log.Info("NewOutboxMongoMapper collection: %s", CollectionName)
	return &MongoMapper{coll: db.Collection(CollectionName)}
}

func (m *MongoMapper) Insert(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
		msg.CreatedAt = time.Now()
		msg.UpdatedAt = msg.CreatedAt
	}
	if msg.Status == "" {
		msg.Status = StatusSending
	}
	_, err := m.coll.InsertOne(ctx, msg)
	return err
}

func (m *MongoMapper) MarkSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := m.coll.UpdateByID(ctx, id, bson.M{
		consts.Set:   bson.M{consts.Status: StatusSent, consts.UpdatedAt: time.Now()},
		consts.Unset: bson.M{"lastError": ""},
		consts.Inc:   bson.M{consts.Attempts: 1},
	})
	return err
}

func (m *MongoMapper) MarkFailed(ctx context.Context, id primitive.ObjectID, reason string) error {
	_, err := m.coll.UpdateByID(ctx, id, bson.M{
		consts.Set: bson.M{consts.Status: StatusFailed, "lastError": reason, consts.UpdatedAt: time.Now()},
		consts.Inc: bson.M{consts.Attempts: 1},
	})
	return err
}

func (m *MongoMapper) Claim(ctx context.Context, maxAttempts int64, staleBefore time.Time, exclude []primitive.ObjectID) (*Message, error) {
	filter := bson.M{
		consts.Attempts: bson.M{consts.Lt: maxAttempts},
		consts.Or: bson.A{
			bson.M{consts.Status: StatusFailed},
			bson.M{
				consts.Status:    bson.M{consts.In: bson.A{StatusPending, StatusSending}},
				consts.UpdatedAt: bson.M{consts.Lt: staleBefore},
			},
		},
	}
	if len(exclude) > 0 {
		filter[consts.ID] = bson.M{consts.Nin: exclude}
	}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: consts.CreatedAt, Value: 1}}).
		SetReturnDocument(options.After)
	update := bson.M{consts.Set: bson.M{consts.Status: StatusSending, consts.UpdatedAt: time.Now()}}

	msg := new(Message)
	err := m.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(msg)
	switch {
	case err == nil:
		return msg, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) Expire(ctx context.Context, kind, refID string, before time.Time) (int64, error) {
	filter := bson.M{
		"kind":           kind,
		consts.Status:    bson.M{consts.In: bson.A{StatusPending, StatusSending, StatusFailed}},
		consts.CreatedAt: bson.M{consts.Lt: before},
	}
	if refID != "" {
		filter["refId"] = refID
	}
	res, err := m.coll.UpdateMany(ctx, filter, bson.M{
		consts.Set: bson.M{consts.Status: StatusExpired, consts.UpdatedAt: time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (m *MongoMapper) FindByStatus(ctx context.Context, status string, skip, limit int64) ([]*Message, error) {
	filter := bson.M{}
	if status != "" {
		filter[consts.Status] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: consts.CreatedAt, Value: -1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return m.find(ctx, filter, opts)
}

func (m *MongoMapper) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Message, error) {
	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	res := make([]*Message, 0)
	if err = cur.All(ctx, &res); err != nil {
		return nil, err
	}
	return res, nil
}
