package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/access"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/user"
	"tuition-show/biz/infrastructure/util/log"
)

// currentActor 要求已登录
func currentActor(ctx context.Context) (access.Actor, error) {
	actor := access.FromMeta(adaptor.ExtractUserMeta(ctx))
	if !actor.Authenticated() {
		return actor, consts.ErrNotAuthentication
	}
	return actor, nil
}

// adminActor 要求管理员
func adminActor(ctx context.Context) (access.Actor, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return actor, err
	}
	if !access.CanAdminister(actor) {
		return actor, consts.ErrAdminOnly
	}
	return actor, nil
}

// copyFields 复制同名同类型字段，id 与关联字段由调用方填充
func copyFields(dst, src any) {
	if err := copier.CopyWithOption(dst, src, copier.Option{CaseSensitive: true}); err != nil {
		log.Error("copy fields failed: %v", err)
	}
}

// loadUsers 批量查询关联用户，缺失的 id 不出现在结果中
func loadUsers(ctx context.Context, m user.IMongoMapper, ids []primitive.ObjectID) (map[string]*user.User, error) {
	hexes := lo.Uniq(lo.FilterMap(ids, func(id primitive.ObjectID, _ int) (string, bool) {
		return id.Hex(), !id.IsZero()
	}))
	if len(hexes) == 0 {
		return map[string]*user.User{}, nil
	}
	users, err := m.FindMany(ctx, &user.Query{IDs: hexes})
	if err != nil {
		return nil, err
	}
	return lo.SliceToMap(users, func(u *user.User) (string, *user.User) {
		return u.ID.Hex(), u
	}), nil
}

// toPerson 关联用户不存在时只保留 id
func toPerson(id primitive.ObjectID, users map[string]*user.User, withMobile bool) *show.Person {
	if id.IsZero() {
		return nil
	}
	p := &show.Person{Id: id.Hex()}
	if u, ok := users[p.Id]; ok {
		p.FullName = u.FullName
		p.Email = u.Email
		if withMobile {
			p.Mobile = u.Mobile
		}
	}
	return p
}

func toUser(u *user.User) *show.User {
	res := &show.User{Id: u.ID.Hex()}
	copyFields(res, u)
	return res
}

// findUserWithRole id 非法、不存在或角色不符都返回 invalid
func findUserWithRole(ctx context.Context, m user.IMongoMapper, id, role string, invalid error) (*user.User, error) {
	u, err := m.FindOne(ctx, id)
	if errors.Is(err, consts.ErrNotFound) || errors.Is(err, consts.ErrInvalidObjectId) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, invalid
	}
	return u, nil
}

// orNA 可选字段为空时的展示值
func orNA(s string) string {
	if s == "" {
		return consts.NotAvailable
	}
	return s
}
