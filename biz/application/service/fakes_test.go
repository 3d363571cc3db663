package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/basic"
	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/event"
	"tuition-show/biz/infrastructure/mail"
	"tuition-show/biz/infrastructure/metrics"
	"tuition-show/biz/infrastructure/repository/course"
	"tuition-show/biz/infrastructure/repository/democlass"
	"tuition-show/biz/infrastructure/repository/outbox"
	"tuition-show/biz/infrastructure/repository/user"
)

// 内存实现，仅覆盖服务层用到的语义

func asUser(u *user.User) context.Context {
	return adaptor.WithUserMeta(context.Background(), &basic.UserMeta{UserId: u.ID.Hex(), Role: u.Role, Email: u.Email})
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return oid, consts.ErrInvalidObjectId
	}
	return oid, nil
}

type fakeUserMapper struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserMapper() *fakeUserMapper {
	return &fakeUserMapper{users: map[string]*user.User{}}
}

func (m *fakeUserMapper) add(role, name, email string) *user.User {
	u := &user.User{FullName: name, Email: email, Role: role, Mobile: "0300-0000000"}
	_ = m.Insert(context.Background(), u)
	return u
}

func (m *fakeUserMapper) Insert(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.users {
		if v.Email == u.Email {
			return consts.ErrRepeatedSignUp
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	m.users[u.ID.Hex()] = &cp
	return nil
}

func (m *fakeUserMapper) FindOne(_ context.Context, id string) (*user.User, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *fakeUserMapper) FindOneByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (m *fakeUserMapper) match(u *user.User, q *user.Query) bool {
	if q.Role != "" && u.Role != q.Role {
		return false
	}
	if q.TeacherStatus != "" && u.TeacherStatus != q.TeacherStatus {
		return false
	}
	if q.StudentStatus != "" && u.StudentStatus != q.StudentStatus {
		return false
	}
	if q.IDs != nil && !lo.Contains(q.IDs, u.ID.Hex()) {
		return false
	}
	return true
}

func (m *fakeUserMapper) FindMany(_ context.Context, q *user.Query) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*user.User, 0)
	for _, u := range m.users {
		if m.match(u, q) {
			cp := *u
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if q.NewestFirst {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].FullName < res[j].FullName
	})
	return res, nil
}

func (m *fakeUserMapper) Count(ctx context.Context, q *user.Query) (int64, error) {
	res, err := m.FindMany(ctx, q)
	return int64(len(res)), err
}

func (m *fakeUserMapper) UpdateStatus(_ context.Context, id, role, status string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.Role != role {
		return nil, consts.ErrNotFound
	}
	if role == consts.RoleTeacher {
		u.TeacherStatus = status
	} else {
		u.StudentStatus = status
	}
	cp := *u
	return &cp, nil
}

func (m *fakeUserMapper) MarkVerified(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return consts.ErrNotFound
	}
	u.IsVerified = true
	return nil
}

func (m *fakeUserMapper) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return consts.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *fakeUserMapper) FillMissingStudentStatus(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.Role == consts.RoleStudent && u.StudentStatus == "" {
			u.StudentStatus = consts.DefaultStatus
			n++
		}
	}
	return n, nil
}

type fakeDemoClassMapper struct {
	mu   sync.Mutex
	data map[string]*democlass.DemoClass
	// conflict 模拟并发写入：Update 前把状态改成该值
	conflict string
	// deleteErr 非空时 DeleteByStudent 直接返回该错误
	deleteErr error
}

func newFakeDemoClassMapper() *fakeDemoClassMapper {
	return &fakeDemoClassMapper{data: map[string]*democlass.DemoClass{}}
}

func (m *fakeDemoClassMapper) Insert(_ context.Context, d *democlass.DemoClass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = primitive.NewObjectID()
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	cp := *d
	m.data[d.ID.Hex()] = &cp
	return nil
}

func (m *fakeDemoClassMapper) FindOne(_ context.Context, id string) (*democlass.DemoClass, error) {
	if _, err := parseID(id); err != nil {
		return nil, consts.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *fakeDemoClassMapper) FindMany(_ context.Context, q *democlass.Query) ([]*democlass.DemoClass, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*democlass.DemoClass, 0)
	for _, d := range m.data {
		if q.StudentID != "" && d.StudentID.Hex() != q.StudentID {
			continue
		}
		if q.TeacherID != "" && d.TeacherID.Hex() != q.TeacherID {
			continue
		}
		if q.Status != "" && d.Status != q.Status {
			continue
		}
		cp := *d
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool {
		if q.Ascending {
			return res[i].BookingDateAndTime.Before(res[j].BookingDateAndTime)
		}
		return res[i].BookingDateAndTime.After(res[j].BookingDateAndTime)
	})
	return res, nil
}

func (m *fakeDemoClassMapper) Update(_ context.Context, id string, upd *democlass.Update) (*democlass.DemoClass, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	if m.conflict != "" {
		d.Status = m.conflict
	}
	if upd.ExpectStatus != "" && d.Status != upd.ExpectStatus {
		return nil, consts.ErrStatusChanged
	}
	if upd.TeacherID != nil {
		d.TeacherID = *upd.TeacherID
	}
	if upd.JoinLink != nil {
		d.JoinLink = *upd.JoinLink
	}
	if upd.BookingDateAndTime != nil {
		d.BookingDateAndTime = *upd.BookingDateAndTime
	}
	if upd.TimeZone != nil {
		d.TimeZone = *upd.TimeZone
	}
	if upd.Status != nil {
		d.Status = *upd.Status
	}
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (m *fakeDemoClassMapper) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return consts.ErrNotFound
	}
	delete(m.data, id)
	return nil
}

func (m *fakeDemoClassMapper) DeleteByStudent(_ context.Context, studentID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	var n int64
	for id, d := range m.data {
		if d.StudentID.Hex() == studentID {
			delete(m.data, id)
			n++
		}
	}
	return n, nil
}

func (m *fakeDemoClassMapper) Count(ctx context.Context, q *democlass.Query) (int64, error) {
	res, err := m.FindMany(ctx, q)
	return int64(len(res)), err
}

func (m *fakeDemoClassMapper) CountByStatus(_ context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := map[string]int64{}
	for _, d := range m.data {
		res[d.Status]++
	}
	return res, nil
}

func (m *fakeDemoClassMapper) LatestByStudent(_ context.Context, studentID string) (*democlass.DemoClass, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *democlass.DemoClass
	for _, d := range m.data {
		if d.StudentID.Hex() == studentID && (latest == nil || d.CreatedAt.After(latest.CreatedAt)) {
			latest = d
		}
	}
	if latest == nil {
		return nil, consts.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *fakeDemoClassMapper) StudentIDsWithStatus(_ context.Context, status string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0)
	for _, d := range m.data {
		if d.Status == status {
			ids = append(ids, d.StudentID.Hex())
		}
	}
	return lo.Uniq(ids), nil
}

type fakeCourseMapper struct {
	mu   sync.Mutex
	data map[string]*course.Course
}

func newFakeCourseMapper() *fakeCourseMapper {
	return &fakeCourseMapper{data: map[string]*course.Course{}}
}

func (m *fakeCourseMapper) Insert(_ context.Context, c *course.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cp := *c
	m.data[c.ID.Hex()] = &cp
	return nil
}

func (m *fakeCourseMapper) FindOne(_ context.Context, id string) (*course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *fakeCourseMapper) FindMany(_ context.Context, q *course.Query) ([]*course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*course.Course, 0)
	for _, c := range m.data {
		if q.StudentID != "" && c.StudentID.Hex() != q.StudentID {
			continue
		}
		if q.TeacherID != "" && c.TeacherID.Hex() != q.TeacherID {
			continue
		}
		cp := *c
		res = append(res, &cp)
	}
	return res, nil
}

func (m *fakeCourseMapper) Consume(_ context.Context, id string) (*course.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[id]
	if !ok {
		return nil, consts.ErrNotFound
	}
	if c.RemainingClasses <= 0 {
		return nil, consts.ErrNoClassesRemaining
	}
	c.RemainingClasses--
	cp := *c
	return &cp, nil
}

func (m *fakeCourseMapper) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return consts.ErrNotFound
	}
	delete(m.data, id)
	return nil
}

type fakeMessageMapper struct {
	mu   sync.Mutex
	data []*course.Message
}

func (m *fakeMessageMapper) Insert(_ context.Context, msg *course.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	cp := *msg
	m.data = append(m.data, &cp)
	return nil
}

func (m *fakeMessageMapper) FindOne(_ context.Context, id string) (*course.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.data {
		if msg.ID.Hex() == id {
			cp := *msg
			return &cp, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (m *fakeMessageMapper) FindByCourse(_ context.Context, courseID string) ([]*course.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Filter(m.data, func(msg *course.Message, _ int) bool { return msg.CourseID.Hex() == courseID }), nil
}

func (m *fakeMessageMapper) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, msg := range m.data {
		if msg.ID.Hex() == id {
			m.data = append(m.data[:i], m.data[i+1:]...)
			return nil
		}
	}
	return consts.ErrNotFound
}

func (m *fakeMessageMapper) DeleteByCourse(_ context.Context, courseID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.data)
	m.data = lo.Filter(m.data, func(msg *course.Message, _ int) bool { return msg.CourseID.Hex() != courseID })
	return int64(before - len(m.data)), nil
}

type fakeOutboxMapper struct {
	mu   sync.Mutex
	data []*outbox.Message
}

func (m *fakeOutboxMapper) Insert(_ context.Context, msg *outbox.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt, msg.UpdatedAt = time.Now(), time.Now()
	if msg.Status == "" {
		msg.Status = outbox.StatusSending
	}
	cp := *msg
	m.data = append(m.data, &cp)
	return nil
}

func (m *fakeOutboxMapper) get(id primitive.ObjectID) *outbox.Message {
	for _, msg := range m.data {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

func (m *fakeOutboxMapper) MarkSent(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.get(id)
	if msg == nil {
		return consts.ErrNotFound
	}
	msg.Status = outbox.StatusSent
	msg.Attempts++
	msg.UpdatedAt = time.Now()
	return nil
}

func (m *fakeOutboxMapper) MarkFailed(_ context.Context, id primitive.ObjectID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.get(id)
	if msg == nil {
		return consts.ErrNotFound
	}
	msg.Status = outbox.StatusFailed
	msg.LastError = reason
	msg.Attempts++
	msg.UpdatedAt = time.Now()
	return nil
}

func (m *fakeOutboxMapper) Claim(_ context.Context, maxAttempts int64, staleBefore time.Time, exclude []primitive.ObjectID) (*outbox.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.data {
		if msg.Attempts >= maxAttempts || lo.Contains(exclude, msg.ID) {
			continue
		}
		stale := (msg.Status == outbox.StatusPending || msg.Status == outbox.StatusSending) && msg.UpdatedAt.Before(staleBefore)
		if msg.Status == outbox.StatusFailed || stale {
			msg.Status = outbox.StatusSending
			msg.UpdatedAt = time.Now()
			cp := *msg
			return &cp, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (m *fakeOutboxMapper) Expire(_ context.Context, kind, refID string, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, msg := range m.data {
		unsent := msg.Status != outbox.StatusSent && msg.Status != outbox.StatusExpired
		if msg.Kind == kind && (refID == "" || msg.RefID == refID) && unsent && msg.CreatedAt.Before(before) {
			msg.Status = outbox.StatusExpired
			n++
		}
	}
	return n, nil
}

// backdate 把记录的创建与更新时间整体前移
func (m *fakeOutboxMapper) backdate(id primitive.ObjectID, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.get(id)
	msg.CreatedAt = msg.CreatedAt.Add(-d)
	msg.UpdatedAt = msg.UpdatedAt.Add(-d)
}

func (m *fakeOutboxMapper) FindByStatus(_ context.Context, status string, skip, limit int64) ([]*outbox.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := lo.Filter(m.data, func(msg *outbox.Message, _ int) bool { return status == "" || msg.Status == status })
	if skip >= int64(len(all)) {
		return []*outbox.Message{}, nil
	}
	all = all[skip:]
	if limit > 0 && limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (m *fakeOutboxMapper) byStatus(status string) []*outbox.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Filter(m.data, func(msg *outbox.Message, _ int) bool { return msg.Status == status })
}

type fakeOtpCache struct {
	mu    sync.Mutex
	codes map[string]string
}

func (c *fakeOtpCache) Get(_ context.Context, email string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[email], nil
}

func (c *fakeOtpCache) Set(_ context.Context, email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[email] = code
	return nil
}

func (c *fakeOtpCache) Delete(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.codes, email)
	return nil
}

var errMailDown = errors.New("mail gateway unavailable")

type fakeMailer struct {
	mu   sync.Mutex
	fail bool
	sent []*mail.Mail
}

func (m *fakeMailer) Send(_ context.Context, msg *mail.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errMailDown
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) setFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*event.BookingEvent
}

func (p *fakePublisher) Publish(_ context.Context, e *event.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

// env 组装一套基于内存实现的服务
type env struct {
	config    *config.Config
	users     *fakeUserMapper
	demos     *fakeDemoClassMapper
	courses   *fakeCourseMapper
	messages  *fakeMessageMapper
	outbox    *fakeOutboxMapper
	otp       *fakeOtpCache
	mailer    *fakeMailer
	publisher *fakePublisher

	notification *NotificationService
	demo         *DemoClassService
	auth         *AuthService
	student      *StudentService
	teacher      *TeacherService
	course       *CourseService
	message      *CourseMessageService

	admin *user.User
}

func newEnv() *env {
	c := &config.Config{}
	c.Mail.OperatorAddresses = []string{"ops@tuition.test"}
	c.Otp.Expire = 300
	c.Outbox.MaxAttempts = 3
	c.Outbox.BatchSize = 10
	c.Outbox.RelayInterval = 60
	c.Outbox.Lease = 120

	e := &env{
		config:    c,
		users:     newFakeUserMapper(),
		demos:     newFakeDemoClassMapper(),
		courses:   newFakeCourseMapper(),
		messages:  &fakeMessageMapper{},
		outbox:    &fakeOutboxMapper{},
		otp:       &fakeOtpCache{codes: map[string]string{}},
		mailer:    &fakeMailer{},
		publisher: &fakePublisher{},
	}
	m := metrics.NewMetrics()
	e.notification = &NotificationService{Config: c, OutboxMapper: e.outbox, Mailer: e.mailer, Metrics: m}
	e.demo = &DemoClassService{
		DemoClassMapper: e.demos,
		UserMapper:      e.users,
		Notification:    e.notification,
		Publisher:       e.publisher,
		Metrics:         m,
	}
	e.auth = &AuthService{Config: c, UserMapper: e.users, OtpCache: e.otp, Notification: e.notification}
	e.student = &StudentService{UserMapper: e.users, DemoClassMapper: e.demos}
	e.teacher = &TeacherService{UserMapper: e.users, CourseMapper: e.courses}
	e.course = &CourseService{CourseMapper: e.courses, MessageMapper: e.messages, UserMapper: e.users}
	e.message = &CourseMessageService{CourseMapper: e.courses, MessageMapper: e.messages, UserMapper: e.users}
	e.admin = e.users.add(consts.RoleAdmin, "Admin", "admin@tuition.test")
	return e
}
