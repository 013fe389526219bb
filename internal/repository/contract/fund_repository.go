package contract

import (
	"context"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FundRepository interface {
	Create(ctx context.Context, fund *entity.Fund) error
	Update(ctx context.Context, fund *entity.Fund) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Fund, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Fund, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
