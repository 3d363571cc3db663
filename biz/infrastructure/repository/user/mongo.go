package user

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/syncx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/util/log"
)

const (
	prefixUserCacheKey = "cache:user:"
	CollectionName     = "users"
)

type IMongoMapper interface {
	Insert(ctx context.Context, u *User) error
	FindOne(ctx context.Context, id string) (*User, error)
	FindOneByEmail(ctx context.Context, email string) (*User, error)
	FindMany(ctx context.Context, q *Query) ([]*User, error)
	Count(ctx context.Context, q *Query) (int64, error)
	// UpdateStatus 只更新角色匹配的用户，返回更新后的文档
	UpdateStatus(ctx context.Context, id, role, status string) (*User, error)
	MarkVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// FillMissingStudentStatus 为缺少 studentStatus 的学生补 pending
	FillMissingStudentStatus(ctx context.Context) (int64, error)
}

type MongoMapper struct {
	coll  *mongo.Collection
	cache cache.Cache
}

// NewMongoMapper 启动时确保 email 唯一索引存在，并发注册由索引兜底
func NewMongoMapper(db *mongo.Database, config *config.Config) (*MongoMapper, error) {
	log.Info("NewUserMongoMapper collection: %s", CollectionName)
	coll := db.Collection(CollectionName)
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if _, err := coll.Indexes().CreateOne(ctx, emailIndex()); err != nil {
		log.Error("NewUserMongoMapper create email index failed: %v", err)
		return nil, err
	}
	return &MongoMapper{
		coll:  coll,
		cache: cache.New(config.Cache, syncx.NewSingleFlight(), cache.NewStat("user"), consts.ErrNotFound),
	}, nil
}

const indexTimeout = 10 * time.Second

func emailIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: consts.Email, Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	}
}

func (m *MongoMapper) Insert(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreatedAt = time.Now()
		u.UpdatedAt = u.CreatedAt
	}
	_, err := m.coll.InsertOne(ctx, u)
	// 依赖 uniq_email 索引
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrRepeatedSignUp
	}
	return err
}

// FindOne 按 id 查询，走 redis 缓存
func (m *MongoMapper) FindOne(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var u User
	err = m.cache.TakeCtx(ctx, &u, prefixUserCacheKey+id, func(val any) error {
		err := m.coll.FindOne(ctx, bson.M{consts.ID: oid}).Decode(val)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return consts.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *MongoMapper) FindOneByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := m.coll.FindOne(ctx, bson.M{consts.Email: email}).Decode(&u)
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindMany(ctx context.Context, q *Query) ([]*User, error) {
	filter, ok := buildFilter(q)
	if !ok {
		return []*User{}, nil
	}
	sort := bson.D{{Key: "fullName", Value: 1}}
	if q != nil && q.NewestFirst {
		sort = bson.D{{Key: consts.CreatedAt, Value: -1}}
	}
	cur, err := m.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0)
	if err = cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoMapper) Count(ctx context.Context, q *Query) (int64, error) {
	filter, ok := buildFilter(q)
	if !ok {
		return 0, nil
	}
	return m.coll.CountDocuments(ctx, filter)
}

func (m *MongoMapper) UpdateStatus(ctx context.Context, id, role, status string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	field := consts.StudentStatus
	if role == consts.RoleTeacher {
		field = consts.TeacherStatus
	}
	var u User
	err = m.coll.FindOneAndUpdate(ctx,
		bson.M{consts.ID: oid, consts.Role: role},
		bson.M{consts.Set: bson.M{field: status, consts.UpdatedAt: time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, consts.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.evict(ctx, id)
	return &u, nil
}

func (m *MongoMapper) MarkVerified(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.coll.UpdateByID(ctx, oid, bson.M{consts.Set: bson.M{
		consts.IsVerified: true,
		consts.UpdatedAt:  time.Now(),
	}})
	if err != nil {
		return err
	}
	m.evict(ctx, id)
	return nil
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
	m.evict(ctx, id)
	if res.DeletedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *MongoMapper) FillMissingStudentStatus(ctx context.Context) (int64, error) {
	filter := bson.M{consts.Role: consts.RoleStudent, consts.StudentStatus: bson.M{consts.Exists: false}}
	cur, err := m.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{consts.ID: 1}))
	if err != nil {
		return 0, err
	}
	var stale []User
	if err = cur.All(ctx, &stale); err != nil {
		return 0, err
	}
	res, err := m.coll.UpdateMany(ctx, filter, bson.M{consts.Set: bson.M{
		consts.StudentStatus: consts.DefaultStatus,
		consts.UpdatedAt:     time.Now(),
	}})
	if err != nil {
		return 0, err
	}
	for _, u := range stale {
		m.evict(ctx, u.ID.Hex())
	}
	return res.ModifiedCount, nil
}

func (m *MongoMapper) evict(ctx context.Context, id string) {
	if err := m.cache.DelCtx(ctx, prefixUserCacheKey+id); err != nil {
		log.CtxError(ctx, "evict user cache failed, id=%s, err=%v", id, err)
	}
}

// buildFilter IDs 全部非法时返回 false，调用方应直接返回空结果
func buildFilter(q *Query) (bson.M, bool) {
	filter := bson.M{}
	if q == nil {
		return filter, true
	}
	if q.Role != "" {
		filter[consts.Role] = q.Role
	}
	if q.TeacherStatus != "" {
		filter[consts.TeacherStatus] = q.TeacherStatus
	}
	if q.StudentStatus != "" {
		filter[consts.StudentStatus] = q.StudentStatus
	}
	if q.IDs != nil {
		oids := lo.FilterMap(q.IDs, func(id string, _ int) (primitive.ObjectID, bool) {
			oid, err := primitive.ObjectIDFromHex(id)
			return oid, err == nil
		})
		if len(oids) == 0 {
			return nil, false
		}
		filter[consts.ID] = bson.M{consts.In: oids}
	}
	return filter, true
}
