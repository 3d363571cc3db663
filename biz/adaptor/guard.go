package adaptor

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/domain/access"
	"tuition-show/biz/infrastructure/consts"
)

// RequireAuth 未登录直接返回 401，不进入 handler 的参数解析
func RequireAuth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if !access.FromMeta(ExtractUserMeta(ctx)).Authenticated() {
			WriteError(ctx, c, nil, consts.ErrNotAuthentication)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

// RequireAdmin 未登录 401，非管理员 403
func RequireAdmin() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		actor := access.FromMeta(ExtractUserMeta(ctx))
		switch {
		case !actor.Authenticated():
			WriteError(ctx, c, nil, consts.ErrNotAuthentication)
		case !access.CanAdminister(actor):
			WriteError(ctx, c, nil, consts.ErrAdminOnly)
		default:
			c.Next(ctx)
			return
		}
		c.Abort()
	}
}
