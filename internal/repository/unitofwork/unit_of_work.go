package unitofwork

import (
	"context"

	"fundsight-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FundRepository() contract.FundRepository
	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	DocumentTableRepository() contract.DocumentTableRepository
}
