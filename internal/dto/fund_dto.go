package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFundRequest struct {
	Name    string `json:"name" validate:"required"`
	Manager string `json:"manager"`
	Vintage int    `json:"vintage"`
}

type CreateFundResponse struct {
	Id uuid.UUID `json:"id"`
}

type FundResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Manager   string    `json:"manager"`
	Vintage   int       `json:"vintage"`
	CreatedAt time.Time `json:"created_at"`
}
