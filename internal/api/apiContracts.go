package api

import "time"

type DealExternalStatus string

const (
	DealStatusError DealExternalStatus = "Error"
)

type UploadResponse struct {
	DealId    string `json:"deal_id" example:"3f1c9a2e-8b4d-4a6e-9c7f-2d5e8b1a4c6d"`
	Status    string `json:"status" example:"uploading"`
	StatusURL string `json:"status_url"`
	Message   string `json:"message" example:"Deal uploaded. Processing started."`
}

type StatusResponse struct {
	DealId      string         `json:"deal_id"`
	Status      string         `json:"status"`
	Error       *OutgoingError `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ProcessedAt time.Time      `json:"processed_at,omitzero"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Deal not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type MemoResponse struct {
	DealId   string `json:"deal_id"`
	MemoText string `json:"memo_text"`
	DocxURL  string `json:"docx_url"`
	AllData  any    `json:"all_data,omitempty"`
}

type ErrorResponse struct {
	DealId string         `json:"deal_id,omitempty"`
	Error  *OutgoingError `json:"error"`
}

// requests---------------------

type WeightageRequest struct {
	Team    float64 `json:"team" validate:"required" example:"0.4"`
	Market  float64 `json:"market" validate:"required" example:"0.3"`
	Product float64 `json:"product" validate:"required" example:"0.3"`
}
