package contract

import (
	"context"

	"fundsight-be/internal/entity"
	"fundsight-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TransitionStatus flips parsing_status from one value to another in a
	// single compare-and-swap UPDATE. It reports false when the document is
	// not currently in the expected status, which is how concurrent
	// consumers lose the race cleanly.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.ParsingStatus) (bool, error)

	// MarkFailed is the terminal failure transition; it records the reason.
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error
}
