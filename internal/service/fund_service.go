package service

import (
	"context"
	"time"

	"fundsight-be/internal/dto"
	"fundsight-be/internal/entity"
	"fundsight-be/internal/repository/specification"
	"fundsight-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFundService interface {
	Create(ctx context.Context, req *dto.CreateFundRequest) (*dto.CreateFundResponse, error)
	GetAll(ctx context.Context) ([]*dto.FundResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.FundResponse, error)
}

type fundService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewFundService(uowFactory unitofwork.RepositoryFactory) IFundService {
	return &fundService{
		uowFactory: uowFactory,
	}
}

func (s *fundService) Create(ctx context.Context, req *dto.CreateFundRequest) (*dto.CreateFundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	fund := entity.Fund{
		Id:        uuid.New(),
		Name:      req.Name,
		Manager:   req.Manager,
		Vintage:   req.Vintage,
		CreatedAt: time.Now(),
	}

	if err := uow.FundRepository().Create(ctx, &fund); err != nil {
		return nil, err
	}

	return &dto.CreateFundResponse{
		Id: fund.Id,
	}, nil
}

func (s *fundService) GetAll(ctx context.Context) ([]*dto.FundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	funds, err := uow.FundRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FundResponse, len(funds))
	for i, f := range funds {
		result[i] = &dto.FundResponse{
			Id:        f.Id,
			Name:      f.Name,
			Manager:   f.Manager,
			Vintage:   f.Vintage,
			CreatedAt: f.CreatedAt,
		}
	}
	return result, nil
}

func (s *fundService) Show(ctx context.Context, id uuid.UUID) (*dto.FundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	fund, err := uow.FundRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if fund == nil {
		return nil, nil
	}

	return &dto.FundResponse{
		Id:        fund.Id,
		Name:      fund.Name,
		Manager:   fund.Manager,
		Vintage:   fund.Vintage,
		CreatedAt: fund.CreatedAt,
	}, nil
}
