package entity

import (
	"time"

	"github.com/google/uuid"
)

type Fund struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Manager   string
	Vintage   int
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
