package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/metrics"
)

func executeJob(processJob dealModel.ProcessJob) {
	start := time.Now()
	outcome := "processed"
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(outcome, time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, processJob.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.ProcessDealTimeout)
	defer cancel()
	logger.With("trace Id ", processJob.TraceId)
	logger.Debug("Processing deal:", "deal Id:", processJob.DealId)

	if err := _pipelineService.ProcessDeal(ctx, processJob); err != nil {
		outcome = "error"
		logger.Error("Deal processing ended in error", "deal Id:", processJob.DealId, "err", err)
	}
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}
