package service

import (
	"context"
	"strings"

	"github.com/google/wire"
	"github.com/samber/lo"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/infrastructure/repository/catalog"
)

type ICatalogService interface {
	ListSubjects(ctx context.Context, req *show.ListSubjectsReq) ([]*show.Subject, error)
}

type CatalogService struct {
	Mapper catalog.IMapper
}

var CatalogServiceSet = wire.NewSet(
	wire.Struct(new(CatalogService), "*"),
	wire.Bind(new(ICatalogService), new(*CatalogService)),
)

func (s *CatalogService) ListSubjects(ctx context.Context, req *show.ListSubjectsReq) ([]*show.Subject, error) {
	subjects, err := s.Mapper.ListSubjects(ctx, strings.ToLower(strings.TrimSpace(req.Category)))
	if err != nil {
		return nil, err
	}
	return lo.Map(subjects, func(sub *catalog.Subject, _ int) *show.Subject {
		return &show.Subject{Id: sub.ID, Name: sub.Name, Category: sub.Category}
	}), nil
}
