package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vantagecap/dealdesk/internal/api"
	"github.com/vantagecap/dealdesk/internal/blob"
	"github.com/vantagecap/dealdesk/internal/data/store"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/handlers"
	"github.com/vantagecap/dealdesk/internal/job"
	"github.com/vantagecap/dealdesk/internal/middleware"
	"github.com/vantagecap/dealdesk/internal/pipeline"
	"github.com/vantagecap/dealdesk/internal/pipeline/export"
)

// StubPipeline implements pipeline.Service
type StubPipeline struct {
	OnGenerateMemo func(ctx context.Context, dealId string, weightage dealModel.Weightage) (dealModel.Deal, error)
}

func (s *StubPipeline) ProcessDeal(ctx context.Context, j dealModel.ProcessJob) error {
	return nil
}

func (s *StubPipeline) GenerateMemo(ctx context.Context, dealId string, weightage dealModel.Weightage) (dealModel.Deal, error) {
	if s.OnGenerateMemo != nil {
		return s.OnGenerateMemo(ctx, dealId, weightage)
	}
	return dealModel.Deal{}, errors.New("not stubbed")
}

// The handler package keeps a process wide singleton, so all tests share one
// wired instance.
var (
	setupOnce    sync.Once
	testRouter   *chi.Mux
	testDeals    *store.InMemoryDealStore
	testBlobs    *blob.InMemoryBlobStore
	testJobs     chan dealModel.ProcessJob
	stubPipeline *StubPipeline
)

func setup() {
	setupOnce.Do(func() {
		testDeals = store.InitInMemoryDealStore()
		testBlobs = blob.InitInMemoryBlobStore()
		testJobs = make(chan dealModel.ProcessJob, 100)
		stubPipeline = &StubPipeline{}

		jobService := job.InitJobService(job.ServiceConfig{
			JobChannel:        testJobs,
			DispatcherChannel: make(chan bool, 100),
			DealStore:         testDeals,
			BlobStore:         testBlobs,
		})
		handlers.InitDealHandler(jobService, stubPipeline)

		testRouter = chi.NewRouter()
		testRouter.Post("/deals/upload", middleware.UploadDealHandler)
		testRouter.Get("/deals", middleware.ListDealsHandler)
		testRouter.Get("/deals/{id}", middleware.GetDealHandler)
		testRouter.Delete("/deals/{id}", middleware.DeleteDealHandler)
		testRouter.Get("/deals/{id}/status", middleware.GetStatusHandler)
		testRouter.Post("/deals/{id}/memo", middleware.GenerateMemoHandler)
		testRouter.Get("/deals/{id}/memo/download", middleware.DownloadMemoHandler)
		testRouter.Get("/deals/{id}/pitch_deck", middleware.DownloadPitchDeckHandler)
	})
}

func multipartDeck(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("pitch_deck", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return body, mw.FormDataContentType()
}

func TestUploadDeal_CreatesRecordAndQueuesJob(t *testing.T) {
	setup()

	body, contentType := multipartDeck(t, "deck.pdf", []byte("%PDF-1.4 fake deck"))
	req := httptest.NewRequest(http.MethodPost, "/deals/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	testRouter.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res api.UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.DealId == "" || res.Status != "uploading" {
		t.Errorf("bad upload response: %+v", res)
	}

	select {
	case queued := <-testJobs:
		if queued.DealId != res.DealId {
			t.Errorf("queued job for %s, want %s", queued.DealId, res.DealId)
		}
	case <-time.After(time.Second):
		t.Fatal("no job queued")
	}

	deal, found := testDeals.GetDeal(context.Background(), res.DealId)
	if !found {
		t.Fatal("deal record not created")
	}
	object := deal.RawFiles[dealModel.FilePitchDeck]
	if !strings.HasSuffix(object, ".pdf") {
		t.Errorf("deck object = %q", object)
	}
	if _, err := testBlobs.Download(context.Background(), object); err != nil {
		t.Errorf("deck bytes not stored: %v", err)
	}

	// status endpoint reflects the fresh record
	statusReq := httptest.NewRequest(http.MethodGet, "/deals/"+res.DealId+"/status", nil)
	statusRec := httptest.NewRecorder()
	testRouter.ServeHTTP(statusRec, statusReq)
	if statusRec.Code != http.StatusOK {
		t.Fatalf("status endpoint = %d", statusRec.Code)
	}
	var statusRes api.StatusResponse
	if err := json.Unmarshal(statusRec.Body.Bytes(), &statusRes); err != nil {
		t.Fatal(err)
	}
	if statusRes.Status != string(dealModel.StatusUploading) {
		t.Errorf("status = %s", statusRes.Status)
	}
}

func TestUploadDeal_RejectsUnsupportedExtension(t *testing.T) {
	setup()

	body, contentType := multipartDeck(t, "deck.exe", []byte("nope"))
	req := httptest.NewRequest(http.MethodPost, "/deals/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	testRouter.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetStatus_UnknownDeal(t *testing.T) {
	setup()

	req := httptest.NewRequest(http.MethodGet, "/deals/ghost/status", nil)
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGenerateMemo_StatusMapping(t *testing.T) {
	setup()

	weightageBody := `{"team": 0.4, "market": 0.3, "product": 0.3}`

	t.Run("deal not processed maps to 400", func(t *testing.T) {
		stubPipeline.OnGenerateMemo = func(ctx context.Context, dealId string, w dealModel.Weightage) (dealModel.Deal, error) {
			return dealModel.Deal{}, fmt.Errorf("guard: %w", pipeline.ErrNotProcessed)
		}
		rec := postMemo(t, "some-deal", weightageBody)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad weightage maps to 400", func(t *testing.T) {
		rec := postMemo(t, "some-deal", `{"team": 0, "market": 0, "product": 0}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("success returns memo", func(t *testing.T) {
		stubPipeline.OnGenerateMemo = func(ctx context.Context, dealId string, w dealModel.Weightage) (dealModel.Deal, error) {
			return dealModel.Deal{
				Id: dealId,
				Memo: &dealModel.Memo{
					DraftV1: "the memo",
					DocxURL: "https://blob/deals/" + dealId + "/memo.docx",
				},
			}, nil
		}
		rec := postMemo(t, "deal-ok", weightageBody)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var res api.MemoResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatal(err)
		}
		if res.MemoText != "the memo" || !strings.Contains(res.DocxURL, "deal-ok") {
			t.Errorf("bad memo response: %+v", res)
		}
	})
}

func TestDownloadMemo_NotGenerated(t *testing.T) {
	setup()

	deal := dealModel.Deal{
		Id:       "deal-nomemo",
		Metadata: dealModel.Metadata{Status: dealModel.StatusProcessed, CreatedAt: time.Now()},
	}
	if err := testDeals.CreateDeal(context.Background(), deal); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/deals/deal-nomemo/memo/download", nil)
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDownloadMemo_StreamsExportedObject(t *testing.T) {
	setup()

	deal := dealModel.Deal{
		Id:       "deal-memo",
		Metadata: dealModel.Metadata{Status: dealModel.StatusProcessed, CreatedAt: time.Now()},
		Memo:     &dealModel.Memo{DraftV1: "the memo", DocxURL: "https://blob/deals/deal-memo/memo.docx"},
	}
	if err := testDeals.CreateDeal(context.Background(), deal); err != nil {
		t.Fatal(err)
	}

	// The download handler must read the same object the exporter writes.
	docxBytes := []byte("PK docx bytes")
	err := testBlobs.Upload(context.Background(), export.MemoObjectName(deal.Id),
		bytes.NewReader(docxBytes), int64(len(docxBytes)),
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/deals/deal-memo/memo/download", nil)
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != string(docxBytes) {
		t.Errorf("body = %q, want the stored document bytes", rec.Body.String())
	}
	if disposition := rec.Header().Get("Content-Disposition"); !strings.Contains(disposition, "memo_deal-memo.docx") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
}

func TestDeleteDeal_RemovesRecordAndObjects(t *testing.T) {
	setup()

	body, contentType := multipartDeck(t, "gone.pdf", []byte("bye"))
	req := httptest.NewRequest(http.MethodPost, "/deals/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	var res api.UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	<-testJobs // drain

	delReq := httptest.NewRequest(http.MethodDelete, "/deals/"+res.DealId, nil)
	delRec := httptest.NewRecorder()
	testRouter.ServeHTTP(delRec, delReq)
	if delRec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", delRec.Code)
	}

	if _, found := testDeals.GetDeal(context.Background(), res.DealId); found {
		t.Error("record still present")
	}
	objects, err := testBlobs.List(context.Background(), "deals/"+res.DealId+"/")
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 0 {
		t.Errorf("objects not cleaned up: %v", objects)
	}
}

func postMemo(t *testing.T, dealId string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/deals/"+dealId+"/memo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testRouter.ServeHTTP(rec, req)
	return rec
}
