package redis

import (
	"github.com/zeromicro/go-zero/core/stores/redis"

	"tuition-show/biz/infrastructure/config"
)

// NewRedis 构造 Redis 客户端，由 wire 注入到验证码缓存
func NewRedis(config *config.Config) *redis.Redis {
	return redis.MustNewRedis(*config.Redis)
}
