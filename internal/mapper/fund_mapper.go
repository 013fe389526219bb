package mapper

import (
	"time"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/model"

	"gorm.io/gorm"
)

type FundMapper struct{}

func NewFundMapper() *FundMapper {
	return &FundMapper{}
}

func (m *FundMapper) ToEntity(f *model.Fund) *entity.Fund {
	if f == nil {
		return nil
	}

	var deletedAt *time.Time
	if f.DeletedAt.Valid {
		t := f.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.Fund{
		Id:        f.Id,
		Name:      f.Name,
		Manager:   f.Manager,
		Vintage:   f.Vintage,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: f.DeletedAt.Valid,
	}
}

func (m *FundMapper) ToModel(f *entity.Fund) *model.Fund {
	if f == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if f.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *f.DeletedAt, Valid: true}
	} else if f.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.Fund{
		Id:        f.Id,
		Name:      f.Name,
		Manager:   f.Manager,
		Vintage:   f.Vintage,
		CreatedAt: f.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *FundMapper) ToEntities(funds []*model.Fund) []*entity.Fund {
	entities := make([]*entity.Fund, len(funds))
	for i, f := range funds {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
