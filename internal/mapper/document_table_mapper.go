package mapper

import (
	"encoding/json"
	"time"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/model"
	"fundsight-be/pkg/extract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentTableMapper struct{}

func NewDocumentTableMapper() *DocumentTableMapper {
	return &DocumentTableMapper{}
}

func (m *DocumentTableMapper) ToEntity(t *model.DocumentTable) (*entity.DocumentTable, error) {
	if t == nil {
		return nil, nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		ts := t.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	var grid extract.Grid
	if len(t.TableData) > 0 {
		if err := json.Unmarshal(t.TableData, &grid); err != nil {
			return nil, err
		}
	}

	return &entity.DocumentTable{
		Id:         t.Id,
		DocumentId: t.DocumentId,
		Page:       t.Page,
		TableType:  extract.TableType(t.TableType),
		TableData:  grid,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  t.DeletedAt.Valid,
	}, nil
}

func (m *DocumentTableMapper) ToModel(t *entity.DocumentTable) (*model.DocumentTable, error) {
	if t == nil {
		return nil, nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	var tableData datatypes.JSON
	if t.TableData != nil {
		raw, err := json.Marshal(t.TableData)
		if err != nil {
			return nil, err
		}
		tableData = datatypes.JSON(raw)
	}

	return &model.DocumentTable{
		Id:         t.Id,
		DocumentId: t.DocumentId,
		Page:       t.Page,
		TableType:  string(t.TableType),
		TableData:  tableData,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}, nil
}

func (m *DocumentTableMapper) ToEntities(tables []*model.DocumentTable) ([]*entity.DocumentTable, error) {
	entities := make([]*entity.DocumentTable, len(tables))
	for i, t := range tables {
		e, err := m.ToEntity(t)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
