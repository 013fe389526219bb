package implementation

import (
	"context"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/mapper"
	"fundsight-be/internal/model"
	"fundsight-be/internal/repository/contract"
	"fundsight-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentTableRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentTableMapper
}

func NewDocumentTableRepository(db *gorm.DB) contract.DocumentTableRepository {
	return &DocumentTableRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentTableMapper(),
	}
}

func (r *DocumentTableRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentTableRepositoryImpl) Create(ctx context.Context, table *entity.DocumentTable) error {
	m, err := r.mapper.ToModel(table)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*table = *e
	return nil
}

func (r *DocumentTableRepositoryImpl) CreateBulk(ctx context.Context, tables []*entity.DocumentTable) error {
	if len(tables) == 0 {
		return nil
	}
	models := make([]*model.DocumentTable, len(tables))
	for i, t := range tables {
		m, err := r.mapper.ToModel(t)
		if err != nil {
			return err
		}
		models[i] = m
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return err
		}
		*tables[i] = *e
	}
	return nil
}

func (r *DocumentTableRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.DocumentTable{}, id).Error
}

func (r *DocumentTableRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentTable{}).Error
}

func (r *DocumentTableRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentTable, error) {
	var models []*model.DocumentTable
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *DocumentTableRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentTable{}).Count(&count).Error
	return count, err
}
