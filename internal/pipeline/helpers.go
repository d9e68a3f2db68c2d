package pipeline

import (
	"context"
	"time"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/metrics"
	"github.com/vantagecap/dealdesk/internal/pipeline/extract"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

// dealError marks the deal terminally failed. The cause may be the process
// deadline itself, so the record write runs on its own short deadline
// detached from the caller's context. The write is best effort: if even that
// fails there is nothing left to do but log it.
func (s *service) dealError(ctx context.Context, log *logger_i.Logger, dealId string, cause error) error {
	log.Error("Deal processing failed", "error", cause)

	recordContext, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.ErrorRecordTimeout)
	defer cancel()

	if err := s.dealStore.UpdateDealFields(recordContext, dealId, map[string]any{
		"metadata.status": dealModel.StatusError,
		"metadata.error":  cause.Error(),
	}); err != nil {
		log.Error("Failed to record deal error", "error", err)
	}
	return cause
}

func (s *service) executeExtractStep(ctx context.Context, log *logger_i.Logger, deckObject string) []string {
	log.Debug("ProcessDeal", "step", "extraction")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	return s.extractor.Extract(ctx, deckObject)
}

func (s *service) executeSummarizeStep(ctx context.Context, log *logger_i.Logger, pages []string) (summarize.Summary, error) {
	log.Debug("ProcessDeal", "step", "summarization")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("summarization", time.Since(start)) }()

	return s.summarizer.Summarize(ctx, extract.JoinPages(pages))
}

func (s *service) executeEnrichStep(ctx context.Context, log *logger_i.Logger, summary summarize.Summary) *dealModel.PublicData {
	if s.gatherer == nil {
		log.Debug("ProcessDeal", "step", "enrichment skipped, no search client")
		return nil
	}
	log.Debug("ProcessDeal", "step", "enrichment")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("enrichment", time.Since(start)) }()

	data := s.gatherer.Gather(ctx, summary.CompanyName, summary.FounderNames, summary.Sector)
	return &data
}

func (s *service) executeMemoStep(ctx context.Context, log *logger_i.Logger, deal dealModel.Deal, weightage dealModel.Weightage) (string, error) {
	log.Debug("GenerateMemo", "step", "draft generation")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("memo_generation", time.Since(start)) }()

	return s.summarizer.GenerateMemo(ctx, deal, weightage)
}
