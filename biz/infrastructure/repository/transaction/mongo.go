package transaction

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/util/log"
)

const CollectionName = "transactions"

// IMongoMapper 交易由支付侧写入，这里只读
type IMongoMapper interface {
	FindAll(ctx context.Context) ([]*Transaction, error)
	SumAmount(ctx context.Context, paymentStatus string) (float64, error)
}

type MongoMapper struct {
	coll *mongo.Collection
}

func NewMongoMapper(db *mongo.Database) *MongoMapper {
	log.Info("NewTransactionMongoMapper collection: %s", CollectionName)
	return &MongoMapper{coll: db.Collection(CollectionName)}
}

func (m *MongoMapper) FindAll(ctx context.Context) ([]*Transaction, error) {
	cur, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: consts.CreatedAt, Value: -1}}))
	if err != nil {
		return nil, err
	}
	res := make([]*Transaction, 0)
	if err = cur.All(ctx, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *MongoMapper) SumAmount(ctx context.Context, paymentStatus string) (float64, error) {
	cur, err := m.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: consts.PaymentStatus, Value: paymentStatus}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err = cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
