package implementation

import (
	"context"
	"errors"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/mapper"
	"fundsight-be/internal/model"
	"fundsight-be/internal/repository/contract"
	"fundsight-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FundRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FundMapper
}

func NewFundRepository(db *gorm.DB) contract.FundRepository {
	return &FundRepositoryImpl{
		db:     db,
		mapper: mapper.NewFundMapper(),
	}
}

func (r *FundRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FundRepositoryImpl) Create(ctx context.Context, fund *entity.Fund) error {
	m := r.mapper.ToModel(fund)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*fund = *r.mapper.ToEntity(m)
	return nil
}

func (r *FundRepositoryImpl) Update(ctx context.Context, fund *entity.Fund) error {
	m := r.mapper.ToModel(fund)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*fund = *r.mapper.ToEntity(m)
	return nil
}

func (r *FundRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Fund{}, id).Error
}

func (r *FundRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Fund, error) {
	var m model.Fund
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FundRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Fund, error) {
	var models []*model.Fund
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FundRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Fund{}).Count(&count).Error
	return count, err
}
