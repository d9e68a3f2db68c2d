package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/job"
	"github.com/vantagecap/dealdesk/internal/metrics"
	"github.com/vantagecap/dealdesk/internal/pipeline"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

var (
	handlerInstance *DealHandler //private singleton
	once            sync.Once
	logDH           *logger_i.Logger
)

type DealHandler struct {
	service  *job.Service
	pipeline pipeline.Service
}

func InitDealHandler(jobService *job.Service, pipelineService pipeline.Service) {
	once.Do(func() {
		handlerInstance = &DealHandler{service: jobService, pipeline: pipelineService}

		logDH = logger_i.NewLogger("DealHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logDH.Info("Starting deal handler")
	})
}

// EnqueueProcessJob hands a freshly uploaded deal to the worker pool. Exactly
// one job is created per deal, at upload time, so pipeline runs for the same
// deal never interleave.
func EnqueueProcessJob(dealId string, traceId string) {
	logDH.With("traceId", traceId, "dealId", dealId)
	logDH.Info("Enqueueing deal for processing")
	handlerInstance.pushToJobChannel(dealModel.ProcessJob{
		DealId:      dealId,
		TraceId:     traceId,
		CreatedTime: time.Now(),
	})
}

func GetDealRecord(id string, traceId string) (result dealModel.Deal, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.DealStore.GetDeal(ctxC, id)
	}
	return result, false
}

// private methods
func (h *DealHandler) pushToJobChannel(processJob dealModel.ProcessJob) {

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- processJob //this is a blocking send to prevent the system from being overwhelmed
	logDH.Info("Created new process job")

	//a new worker is started every few requests so the pool grows with load
	//pipeline runs are long - OCR plus two model calls - so an extra worker
	//per burst keeps the queue moving while idle workers retire on their own

	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount() //metrics
		logDH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
