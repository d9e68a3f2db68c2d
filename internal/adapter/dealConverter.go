package adapter

import (
	"fmt"
	"net/http"

	"github.com/vantagecap/dealdesk/internal/api"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

func ToUploadResponse(dealId string) api.UploadResponse {
	return api.UploadResponse{
		DealId:    dealId,
		Status:    string(dealModel.StatusUploading),
		StatusURL: fmt.Sprintf("deals/%s/status", dealId),
		Message:   "Deal uploaded. Processing started.",
	}
}

func ToStatusResponse(deal dealModel.Deal) api.StatusResponse {
	var errorPtr *api.OutgoingError
	if deal.Metadata.Status == dealModel.StatusError {
		errorPtr = &api.OutgoingError{
			Code:    http.StatusInternalServerError,
			Message: deal.Metadata.Error,
			Retry:   false,
		}
	}

	return api.StatusResponse{
		DealId:      deal.Id,
		Status:      string(deal.Metadata.Status),
		Error:       errorPtr,
		CreatedAt:   deal.Metadata.CreatedAt,
		ProcessedAt: deal.Metadata.ProcessedAt,
	}
}

func ToMemoResponse(deal dealModel.Deal) api.MemoResponse {
	res := api.MemoResponse{
		DealId:  deal.Id,
		AllData: deal,
	}
	if deal.Memo != nil {
		res.MemoText = deal.Memo.DraftV1
		res.DocxURL = deal.Memo.DocxURL
	}
	return res
}

func BadRequest(id string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		DealId: id,
		Error: &api.OutgoingError{
			Code:    code,
			Message: message,
			Retry:   false,
		},
	}
}
