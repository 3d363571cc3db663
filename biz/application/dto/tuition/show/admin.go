package show

import "time"

type TransactionItem struct {
	Id          string    `json:"id"`
	StudentName string    `json:"studentName"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	PaymentId   string    `json:"paymentId"`
	Date        time.Time `json:"date"`
}

type DashboardStats struct {
	TotalStudents       int64            `json:"totalStudents"`
	TotalTeachers       int64            `json:"totalTeachers"`
	PendingTeachers     int64            `json:"pendingTeachers"`
	TotalDemoClasses    int64            `json:"totalDemoClasses"`
	DemoClassesByStatus map[string]int64 `json:"demoClassesByStatus"`
	TotalEarnings       float64          `json:"totalEarnings"`
}

type DashboardResp struct {
	Data *DashboardStats `json:"data"`
}

type ListSubjectsReq struct {
	Category string `query:"category"`
}

type Subject struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type ListOutboxReq struct {
	Status string `query:"status"`
	Page   string `query:"page"`
	Limit  string `query:"limit"`
}

type OutboxMessage struct {
	Id        string    `json:"_id"`
	Kind      string    `json:"kind"`
	To        []string  `json:"to"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Attempts  int64     `json:"attempts"`
	LastError string    `json:"lastError,omitempty"`
	RefId     string    `json:"refId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
