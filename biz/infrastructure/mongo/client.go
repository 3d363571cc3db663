package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/util/log"
)

const connectTimeout = 10 * time.Second

// NewClient 建立进程唯一的 mongo 连接，cleanup 在服务退出时断开
func NewClient(config *config.Config) (*mongo.Client, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Mongo.URL))
	if err != nil {
		return nil, nil, err
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	log.Info("NewClient mongo connected, db: %s", config.Mongo.DB)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Error("mongo disconnect failed: %v", err)
			return
		}
		log.Info("mongo disconnected")
	}
	return client, cleanup, nil
}

// NewDatabase 按配置选库
func NewDatabase(client *mongo.Client, config *config.Config) *mongo.Database {
	return client.Database(config.Mongo.DB)
}
