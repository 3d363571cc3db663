package service

import (
	"context"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/catalog"
	"tuition-show/biz/infrastructure/repository/democlass"
	"tuition-show/biz/infrastructure/repository/transaction"
)

type fakeTransactionMapper struct {
	data []*transaction.Transaction
}

func (m *fakeTransactionMapper) FindAll(_ context.Context) ([]*transaction.Transaction, error) {
	return m.data, nil
}

func (m *fakeTransactionMapper) SumAmount(_ context.Context, paymentStatus string) (float64, error) {
	var total float64
	for _, t := range m.data {
		if t.PaymentStatus == paymentStatus {
			total += t.Amount
		}
	}
	return total, nil
}

func TestListTransactions(t *testing.T) {
	e := newEnv()
	ali := e.users.add(consts.RoleStudent, "Ali", "ali@tuition.test")
	txs := &fakeTransactionMapper{data: []*transaction.Transaction{
		{ID: primitive.NewObjectID(), UserID: ali.ID, Amount: 3000, PaymentStatus: consts.PaymentCompleted, TransactionID: "pay_1", CreatedAt: time.Now()},
		{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Amount: 1500, PaymentStatus: consts.PaymentPending, TransactionID: "pay_2"},
	}}
	s := &TransactionService{TransactionMapper: txs, UserMapper: e.users}

	list, err := s.ListTransactions(asUser(e.admin))
	assert.Nil(t, err)
	assert.DeepEqual(t, 2, len(list))
	assert.DeepEqual(t, "Ali", list[0].StudentName)
	assert.DeepEqual(t, "pay_1", list[0].PaymentId)
	assert.DeepEqual(t, consts.NotAvailable, list[1].StudentName)

	_, err = s.ListTransactions(asUser(ali))
	assert.DeepEqual(t, consts.ErrAdminOnly, err)
}

func TestDashboard(t *testing.T) {
	e := newEnv()
	e.users.add(consts.RoleStudent, "Ali", "ali@tuition.test")
	pending := e.users.add(consts.RoleTeacher, "Usman", "usman@tuition.test")
	approved := e.users.add(consts.RoleTeacher, "Bilal", "bilal@tuition.test")
	e.users.users[pending.ID.Hex()].TeacherStatus = "pending"
	e.users.users[approved.ID.Hex()].TeacherStatus = "approved"
	_ = e.demos.Insert(context.Background(), &democlass.DemoClass{Status: "pending"})
	_ = e.demos.Insert(context.Background(), &democlass.DemoClass{Status: "completed"})
	_ = e.demos.Insert(context.Background(), &democlass.DemoClass{Status: "completed"})
	txs := &fakeTransactionMapper{data: []*transaction.Transaction{
		{Amount: 3000, PaymentStatus: consts.PaymentCompleted},
		{Amount: 500, PaymentStatus: consts.PaymentFailed},
		{Amount: 1000, PaymentStatus: consts.PaymentCompleted},
	}}
	s := &DashboardService{UserMapper: e.users, DemoClassMapper: e.demos, TransactionMapper: txs}

	resp, err := s.GetDashboard(asUser(e.admin))
	assert.Nil(t, err)
	assert.DeepEqual(t, &show.DashboardStats{
		TotalStudents:       1,
		TotalTeachers:       2,
		PendingTeachers:     1,
		TotalDemoClasses:    3,
		DemoClassesByStatus: map[string]int64{"pending": 1, "completed": 2},
		TotalEarnings:       4000,
	}, resp.Data)
}

func TestListSubjects(t *testing.T) {
	s := &CatalogService{Mapper: catalog.StaticMapper{}}
	all, err := s.ListSubjects(context.Background(), &show.ListSubjectsReq{})
	assert.Nil(t, err)
	assert.DeepEqual(t, 12, len(all))

	lang, err := s.ListSubjects(context.Background(), &show.ListSubjectsReq{Category: " Language "})
	assert.Nil(t, err)
	assert.DeepEqual(t, 3, len(lang))
	assert.DeepEqual(t, "English", lang[0].Name)
}
