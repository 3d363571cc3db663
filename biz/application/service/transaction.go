package service

import (
	"context"

	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/transaction"
	"tuition-show/biz/infrastructure/repository/user"
)

type ITransactionService interface {
	ListTransactions(ctx context.Context) ([]*show.TransactionItem, error)
}

type TransactionService struct {
	TransactionMapper transaction.IMongoMapper
	UserMapper        user.IMongoMapper
}

var TransactionServiceSet = wire.NewSet(
	wire.Struct(new(TransactionService), "*"),
	wire.Bind(new(ITransactionService), new(*TransactionService)),
)

// ListTransactions 按时间倒序，用户已删除时姓名显示 N/A
func (s *TransactionService) ListTransactions(ctx context.Context) ([]*show.TransactionItem, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	txs, err := s.TransactionMapper.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := loadUsers(ctx, s.UserMapper, lo.Map(txs, func(t *transaction.Transaction, _ int) primitive.ObjectID {
		return t.UserID
	}))
	if err != nil {
		return nil, err
	}
	return lo.Map(txs, func(t *transaction.Transaction, _ int) *show.TransactionItem {
		name := consts.NotAvailable
		if u, ok := users[t.UserID.Hex()]; ok {
			name = orNA(u.FullName)
		}
		return &show.TransactionItem{
			Id:          t.ID.Hex(),
			StudentName: name,
			Amount:      t.Amount,
			Status:      t.PaymentStatus,
			PaymentId:   t.TransactionID,
			Date:        t.CreatedAt,
		}
	}), nil
}
