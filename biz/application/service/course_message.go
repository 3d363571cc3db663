package service

import (
	"context"
	"errors"

	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/access"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/course"
	"tuition-show/biz/infrastructure/repository/user"
)

type ICourseMessageService interface {
	ListMessages(ctx context.Context, req *show.CourseIdReq) (*show.ListMessagesResp, error)
	SendMessage(ctx context.Context, courseId string, req *show.SendMessageReq) (*show.SendMessageResp, error)
	DeleteMessage(ctx context.Context, req *show.DeleteMessageReq) (*show.Response, error)
}

type CourseMessageService struct {
	CourseMapper  course.IMongoMapper
	MessageMapper course.IMessageMongoMapper
	UserMapper    user.IMongoMapper
}

var CourseMessageServiceSet = wire.NewSet(
	wire.Struct(new(CourseMessageService), "*"),
	wire.Bind(new(ICourseMessageService), new(*CourseMessageService)),
)

func (s *CourseMessageService) ListMessages(ctx context.Context, req *show.CourseIdReq) (*show.ListMessagesResp, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if _, err = s.memberCourse(ctx, actor, req.CourseId); err != nil {
		return nil, err
	}
	msgs, err := s.MessageMapper.FindByCourse(ctx, req.CourseId)
	if err != nil {
		return nil, err
	}
	ids := lo.Map(msgs, func(m *course.Message, _ int) primitive.ObjectID { return m.SenderID })
	users, err := loadUsers(ctx, s.UserMapper, ids)
	if err != nil {
		return nil, err
	}
	return &show.ListMessagesResp{
		Success:  true,
		Messages: lo.Map(msgs, func(m *course.Message, _ int) *show.CourseMessage { return toCourseMessage(m, users) }),
	}, nil
}

func (s *CourseMessageService) SendMessage(ctx context.Context, courseId string, req *show.SendMessageReq) (*show.SendMessageResp, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.memberCourse(ctx, actor, courseId)
	if err != nil {
		return nil, err
	}
	// 成员身份确认后再校验内容
	if err = req.Validate(); err != nil {
		return nil, err
	}
	senderID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, consts.ErrNotAuthentication
	}
	m := &course.Message{
		CourseID:       c.ID,
		SenderID:       senderID,
		Message:        req.Message,
		AttachmentUrl:  req.AttachmentUrl,
		AttachmentType: req.AttachmentType,
	}
	if err = s.MessageMapper.Insert(ctx, m); err != nil {
		return nil, err
	}
	users, err := loadUsers(ctx, s.UserMapper, []primitive.ObjectID{senderID})
	if err != nil {
		return nil, err
	}
	return &show.SendMessageResp{Success: true, Message: toCourseMessage(m, users)}, nil
}

// DeleteMessage 发送者本人或管理员可删除
func (s *CourseMessageService) DeleteMessage(ctx context.Context, req *show.DeleteMessageReq) (*show.Response, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	m, err := s.MessageMapper.FindOne(ctx, req.MessageId)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	if m.CourseID.Hex() != req.CourseId {
		return nil, consts.ErrMessageNotInCourse
	}
	if !access.CanDeleteMessage(actor, m.SenderID.Hex()) {
		return nil, consts.ErrNotMessageSender
	}
	if err = s.MessageMapper.Delete(ctx, req.MessageId); err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrMessageNotFound
		}
		return nil, err
	}
	return &show.Response{Success: true, Message: "Message deleted successfully"}, nil
}

// memberCourse 课程存在且调用方为成员或管理员
func (s *CourseMessageService) memberCourse(ctx context.Context, actor access.Actor, courseId string) (*course.Course, error) {
	c, err := s.CourseMapper.FindOne(ctx, courseId)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if !access.CanAccessCourse(actor, c.StudentID.Hex(), hexOrEmpty(c.TeacherID)) {
		return nil, consts.ErrNotCourseMember
	}
	return c, nil
}

func toCourseMessage(m *course.Message, users map[string]*user.User) *show.CourseMessage {
	sender := toPerson(m.SenderID, users, false)
	if u, ok := users[m.SenderID.Hex()]; ok && sender != nil {
		sender.Email = ""
		sender.Role = u.Role
	}
	res := &show.CourseMessage{
		Id:       m.ID.Hex(),
		CourseId: m.CourseID.Hex(),
		SenderId: sender,
	}
	copyFields(res, m)
	return res
}
