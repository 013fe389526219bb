package contract

import (
	"context"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentTableRepository interface {
	Create(ctx context.Context, table *entity.DocumentTable) error
	CreateBulk(ctx context.Context, tables []*entity.DocumentTable) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentTable, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
