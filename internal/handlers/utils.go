package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/vantagecap/dealdesk/internal/adapter"
	"github.com/vantagecap/dealdesk/internal/api"
	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateId(id string, traceId string) (result dealModel.Deal, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Deal ID")
		return dealModel.Deal{}, false
	}
	return GetDealRecord(id, traceId)
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func isSupportedDeckExtension(ext string) bool {
	switch ext {
	case ".pdf", ".docx", ".txt", ".rtf":
		return true
	}
	return false
}

func deckContentType(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	case ".rtf":
		return "application/rtf"
	}
	return "application/octet-stream"
}

func deckObjectName(dealId string, ext string) string {
	return "deals/" + dealId + "/pitch_deck" + ext
}

func newDealRecord(dealId string, object string) dealModel.Deal {
	return dealModel.Deal{
		Id: dealId,
		Metadata: dealModel.Metadata{
			Status:    dealModel.StatusUploading,
			CreatedAt: time.Now().UTC(),
		},
		RawFiles: map[string]string{
			dealModel.FilePitchDeck: object,
		},
	}
}

// deleteDealObjects clears the deal's stored files. Best effort only, the
// record deletion already succeeded.
func deleteDealObjects(r *http.Request, dealId string) {
	blobStore := handlerInstance.service.BlobStore
	objects, err := blobStore.List(r.Context(), "deals/"+dealId+"/")
	if err != nil {
		logRH.Warn("Could not list deal objects for cleanup", "dealId", dealId, "error", err)
		return
	}
	for _, object := range objects {
		if err := blobStore.Delete(r.Context(), object); err != nil {
			logRH.Warn("Could not delete deal object", "object", object, "error", err)
		}
	}
}

// streamObject copies a stored object straight to the response as a download.
func streamObject(w http.ResponseWriter, r *http.Request, object string, downloadName string, contentType string) {
	reader, err := handlerInstance.service.BlobStore.Download(r.Context(), object)
	if err != nil {
		logRH.Error("Object download failed", "object", object, "error", err)
		WriteErrorResponse(w, http.StatusNotFound, "", "File not found")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadName+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		logRH.Error("Streaming object failed", "object", object, "error", err)
	}
}

// validWeightage rejects payloads with no emphasis at all or negative values.
func validWeightage(req api.WeightageRequest) bool {
	if req.Team < 0 || req.Market < 0 || req.Product < 0 {
		return false
	}
	return req.Team+req.Market+req.Product > 0
}
