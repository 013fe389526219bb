package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Fund struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"type:varchar(255);not null"`
	Manager   string         `gorm:"type:varchar(255)"`
	Vintage   int            `gorm:"default:0"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Fund) TableName() string {
	return "funds"
}
