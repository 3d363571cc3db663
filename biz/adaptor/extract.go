package adaptor

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mitchellh/mapstructure"

	"tuition-show/biz/application/dto/basic"
	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/util"
	"tuition-show/biz/infrastructure/util/log"
)

type userMetaKey struct{}

func WithUserMeta(ctx context.Context, meta *basic.UserMeta) context.Context {
	return context.WithValue(ctx, userMetaKey{}, meta)
}

// ExtractUserMeta 未登录时返回空的 UserMeta，调用方通过 GetUserId 判断
func ExtractUserMeta(ctx context.Context) *basic.UserMeta {
	if meta, ok := ctx.Value(userMetaKey{}).(*basic.UserMeta); ok && meta != nil {
		return meta
	}
	return new(basic.UserMeta)
}

// JWTAuth 解析 Authorization 头中的会话并放入 ctx；无效 token 不拦截，由业务层决定是否需要登录
func JWTAuth(auth config.Auth) (app.HandlerFunc, error) {
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(auth.PublicKey))
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, c *app.RequestContext) {
		header := string(c.GetHeader(consts.Authorization))
		if header != "" {
			meta, err := ParseJwtToken(key, strings.TrimPrefix(header, consts.BearerPrefix))
			if err != nil {
				log.CtxInfo(ctx, "extract user meta fail, err=%v", err)
			} else {
				ctx = WithUserMeta(ctx, meta)
			}
		}
		c.Next(ctx)
	}, nil
}

func ParseJwtToken(key *ecdsa.PublicKey, tokenString string) (*basic.UserMeta, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, errors.New("unexpected signing method " + t.Method.Alg())
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token is not valid")
	}
	user := new(basic.UserMeta)
	if err = mapstructure.Decode(map[string]any(claims), user); err != nil {
		return nil, err
	}
	if user.UserId == "" {
		return nil, errors.New("token has no userId")
	}
	return user, nil
}

// GenerateJwtToken 生成jwt
/*
生成 ECDSA 私钥: openssl ecparam -genkey -name prime256v1 -noout -out private_key.pem
从私钥中提取公钥: openssl ec -in private_key.pem -pubout -out public_key.pem
*/
func GenerateJwtToken(auth config.Auth, meta *basic.UserMeta) (string, int64, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(auth.SecretKey))
	if err != nil {
		return "", 0, err
	}
	iat := time.Now().Unix()
	exp := iat + auth.AccessExpire
	claims := make(jwt.MapClaims)
	claims["exp"] = exp
	claims["iat"] = iat
	claims["userId"] = meta.UserId
	claims["role"] = meta.Role
	claims["email"] = meta.Email
	token := jwt.New(jwt.SigningMethodES256)
	token.Claims = claims
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", 0, err
	}
	log.Info("GenerateJwtToken userMeta=%s", util.JSONF(meta))
	return tokenString, exp, nil
}
