package dto

import (
	"github.com/google/uuid"
)

type QueryMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type QueryRequest struct {
	Query   string         `json:"query" validate:"required"`
	FundId  *uuid.UUID     `json:"fund_id"`
	TopK    int            `json:"top_k" validate:"omitempty,min=1,max=50"`
	History []QueryMessage `json:"history" validate:"omitempty,dive"`
}

type QuerySourceResponse struct {
	Content    string    `json:"content"`
	Page       int       `json:"page"`
	Score      float64   `json:"score"`
	DocumentId uuid.UUID `json:"document_id"`
}

type QueryResponse struct {
	Answer         string                `json:"answer"`
	Intent         string                `json:"intent"`
	Sources        []QuerySourceResponse `json:"sources"`
	Metrics        map[string]float64    `json:"metrics,omitempty"`
	ProcessingTime float64               `json:"processing_time"`
}
