package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vantagecap/dealdesk/internal/adapter"
	"github.com/vantagecap/dealdesk/internal/adapter/utils"
	"github.com/vantagecap/dealdesk/internal/api"
	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/data/store"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/pipeline"
	"github.com/vantagecap/dealdesk/internal/pipeline/export"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// UploadDealHandler godoc
// @Summary      Upload a pitch deck
// @Description  Receives a pitch deck via multipart/form-data, stores it, creates the deal record and queues background processing.
// @Tags         Deals
// @Accept       multipart/form-data
// @Produce      json
// @Param        pitch_deck  formData  file  true  "The pitch deck file (PDF, DOCX, TXT or RTF)"
// @Success      202  {object}  api.UploadResponse  "Deal created, processing queued"
// @Failure      400  {object}  api.ErrorResponse   "Missing file, bad extension or file too large"
// @Failure      500  {object}  api.ErrorResponse   "Storage error"
// @Router       /deals/upload [post]
func UploadDealHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		err := r.ParseMultipartForm(config.MaxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("pitch_deck")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "pitch_deck file is required")
			return
		}
		defer fileReader.Close()

		ext := strings.ToLower(filepath.Ext(fileMetadata.Filename))
		if !isSupportedDeckExtension(ext) {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Unsupported file type "+ext)
			return
		}

		dealId := utils.GetNewUUID()
		object := deckObjectName(dealId, ext)

		if err := handlerInstance.service.BlobStore.Upload(r.Context(), object, fileReader, fileMetadata.Size, deckContentType(ext)); err != nil {
			logRH.Error("Pitch deck upload failed", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, dealId, "Storage error")
			return
		}

		if err := handlerInstance.service.DealStore.CreateDeal(r.Context(), newDealRecord(dealId, object)); err != nil {
			logRH.Error("Deal record creation failed", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, dealId, "Storage error")
			return
		}

		EnqueueProcessJob(dealId, r.Context().Value(config.TRACE_ID_KEY).(string))
		writeJsonResponse(w, http.StatusAccepted, adapter.ToUploadResponse(dealId))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get deal status
// @Description  Retrieves the current pipeline status of a deal using its ID.
// @Tags         Deals
// @Produce      json
// @Param        id   path      string  true  "Deal ID"
// @Success      200  {object}  api.StatusResponse  "The current status of the deal"
// @Failure      404  {object}  api.ErrorResponse   "Deal not found"
// @Router       /deals/{id}/status [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		deal, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Deal not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(deal))
	}
}

// GetDealHandler godoc
// @Summary      Get the full deal record
// @Tags         Deals
// @Produce      json
// @Param        id   path      string  true  "Deal ID"
// @Success      200  {object}  dealModel.Deal
// @Failure      404  {object}  api.ErrorResponse  "Deal not found"
// @Router       /deals/{id} [get]
func GetDealHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		deal, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Deal not found")
			return
		}
		writeJsonResponse(w, http.StatusOK, deal)
	}
}

// ListDealsHandler godoc
// @Summary      List all deals
// @Tags         Deals
// @Produce      json
// @Success      200  {array}  dealModel.Deal
// @Failure      500  {object}  api.ErrorResponse  "Storage error"
// @Router       /deals [get]
func ListDealsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		deals, err := handlerInstance.service.DealStore.ListDeals(r.Context())
		if err != nil {
			logRH.Error("List deals failed", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
			return
		}
		writeJsonResponse(w, http.StatusOK, deals)
	}
}

// DeleteDealHandler godoc
// @Summary      Delete a deal
// @Description  Removes the deal record and its stored files. File cleanup is best effort.
// @Tags         Deals
// @Produce      json
// @Param        id   path      string  true  "Deal ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  api.ErrorResponse  "Deal not found"
// @Router       /deals/{id} [delete]
func DeleteDealHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		_, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Deal not found")
			return
		}

		if err := handlerInstance.service.DealStore.DeleteDeal(r.Context(), idString); err != nil {
			logRH.Error("Deal record deletion failed", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, idString, "Storage error")
			return
		}
		deleteDealObjects(r, idString)

		writeJsonResponse(w, http.StatusOK, map[string]string{"deal_id": idString, "message": "Deal deleted"})
	}
}

// GenerateMemoHandler godoc
// @Summary      Generate the investment memo
// @Description  Synchronously drafts the memo with the supplied weightage, exports it to DOCX and returns both.
// @Tags         Memo
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Deal ID"
// @Param        request  body      api.WeightageRequest  true  "Relative section emphasis"
// @Success      200      {object}  api.MemoResponse
// @Failure      400      {object}  api.ErrorResponse  "Bad weightage payload or deal not processed yet"
// @Failure      404      {object}  api.ErrorResponse  "Deal not found"
// @Router       /deals/{id}/memo [post]
func GenerateMemoHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")

		var weightageReq api.WeightageRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the memo handler reader :", err)
			}
		}(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&weightageReq); err != nil || !validWeightage(weightageReq) {
			logRH.Warn("Bad Memo Request: ", "error:", err, "request data:", weightageReq)
			WriteErrorResponse(w, http.StatusBadRequest, idString, "Bad Request")
			return
		}

		deal, err := handlerInstance.pipeline.GenerateMemo(r.Context(), idString, dealModel.Weightage{
			Team:    weightageReq.Team,
			Market:  weightageReq.Market,
			Product: weightageReq.Product,
		})
		if err != nil {
			writeMemoError(w, idString, err)
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToMemoResponse(deal))
	}
}

// DownloadMemoHandler godoc
// @Summary      Download the memo DOCX
// @Tags         Memo
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id   path  string  true  "Deal ID"
// @Success      200  {file}    file
// @Failure      404  {object}  api.ErrorResponse  "Memo not found"
// @Router       /deals/{id}/memo/download [get]
func DownloadMemoHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		deal, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
		if !isFound || deal.Memo == nil || deal.Memo.DocxURL == "" {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Memo not found")
			return
		}

		streamObject(w, r, export.MemoObjectName(idString), "memo_"+idString+".docx",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	}
}

// DownloadPitchDeckHandler godoc
// @Summary      Download the original pitch deck
// @Tags         Deals
// @Produce      application/octet-stream
// @Param        id   path  string  true  "Deal ID"
// @Success      200  {file}    file
// @Failure      404  {object}  api.ErrorResponse  "Pitch deck not found"
// @Router       /deals/{id}/pitch_deck [get]
func DownloadPitchDeckHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		deal, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Deal not found")
			return
		}
		object, hasDeck := deal.RawFiles[dealModel.FilePitchDeck]
		if !hasDeck {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Pitch deck not found")
			return
		}

		streamObject(w, r, object, "pitch_deck_"+idString+filepath.Ext(object), deckContentType(filepath.Ext(object)))
	}
}

func writeMemoError(w http.ResponseWriter, dealId string, err error) {
	switch {
	case errors.Is(err, pipeline.ErrDealMissing), errors.Is(err, store.ErrDealNotFound):
		WriteErrorResponse(w, http.StatusNotFound, dealId, "Deal not found")
	case errors.Is(err, pipeline.ErrNotProcessed):
		WriteErrorResponse(w, http.StatusBadRequest, dealId, "Deal is not processed yet")
	default:
		logRH.Error("Memo generation failed", "dealId", dealId, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, dealId, "Memo generation failed")
	}
}
