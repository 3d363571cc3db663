package cache

import (
	"context"
	"fmt"
	"strings"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"

	"tuition-show/biz/infrastructure/config"
)

const otpCachePrefix = "otp"

type IOtpCacheMapper interface {
	Get(ctx context.Context, email string) (string, error)
	Set(ctx context.Context, email, code string) error
	Delete(ctx context.Context, email string) error
}

type OtpCacheMapper struct {
	rds    *gozero_redis.Redis
	expire int
}

func NewOtpCacheMapper(rds *gozero_redis.Redis, config *config.Config) *OtpCacheMapper {
	return &OtpCacheMapper{
		rds:    rds,
		expire: config.Otp.Expire,
	}
}

// Get 未命中或已过期时返回空串
func (m *OtpCacheMapper) Get(ctx context.Context, email string) (string, error) {
	return m.rds.GetCtx(ctx, m.buildCacheKey(email))
}

// Set 覆盖旧验证码并重置有效期
func (m *OtpCacheMapper) Set(ctx context.Context, email, code string) error {
	return m.rds.SetexCtx(ctx, m.buildCacheKey(email), code, m.expire)
}

func (m *OtpCacheMapper) Delete(ctx context.Context, email string) error {
	_, err := m.rds.DelCtx(ctx, m.buildCacheKey(email))
	return err
}

// buildCacheKey 构造缓存key
func (m *OtpCacheMapper) buildCacheKey(email string) string {
	return fmt.Sprintf("%s:%s", otpCachePrefix, strings.ToLower(email))
}
