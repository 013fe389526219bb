package entity

import (
	"time"

	"fundsight-be/pkg/extract"

	"github.com/google/uuid"
)

// DocumentTable is one classified table lifted from a report page. The
// grid keeps the extractor's raw cells, nil cells included.
type DocumentTable struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;index"`
	Page       int
	TableType  extract.TableType
	TableData  extract.Grid
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
