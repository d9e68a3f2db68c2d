package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/pipeline/enrich"
	"github.com/vantagecap/dealdesk/internal/pipeline/export"
	"github.com/vantagecap/dealdesk/internal/pipeline/extract"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

// ErrNotProcessed rejects memo generation for a deal whose pipeline has not
// finished yet.
var ErrNotProcessed = errors.New("deal is not processed yet")

// ErrDealMissing reports a pipeline invocation for a deal id with no record.
var ErrDealMissing = errors.New("deal record missing")

// Service is the full deal pipeline. The worker only calls ProcessDeal; the
// memo handler only calls GenerateMemo. Neither needs to know about the
// extractors, models or search clients behind them.
type Service interface {
	ProcessDeal(ctx context.Context, job dealModel.ProcessJob) error
	GenerateMemo(ctx context.Context, dealId string, weightage dealModel.Weightage) (dealModel.Deal, error)
}

type service struct {
	dealStore  dealModel.DealStore
	extractor  *extract.Service
	summarizer summarize.Summarizer
	gatherer   enrich.Gatherer
	exporter   export.Exporter
	logger     *logger_i.Logger
}

// NewService wires the pipeline stages together. Gatherer may be nil when no
// search API is configured; enrichment is then skipped entirely.
func NewService(dealStore dealModel.DealStore, extractor *extract.Service, summarizer summarize.Summarizer, gatherer enrich.Gatherer, exporter export.Exporter) Service {
	return &service{
		dealStore:  dealStore,
		extractor:  extractor,
		summarizer: summarizer,
		gatherer:   gatherer,
		exporter:   exporter,
		logger:     logger_i.NewLogger("Pipeline Service :"),
	}
}

// ProcessDeal runs the full background pipeline for one uploaded deal:
// extraction, summarization, then public data enrichment, committing the
// extracted text and entities before enrichment starts so a late failure
// never loses the expensive early work. Terminal failures mark the deal
// record with status error instead of bubbling out.
func (s *service) ProcessDeal(ctx context.Context, job dealModel.ProcessJob) error {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "dealId", job.DealId)

	processContext, cancel := context.WithTimeout(ctx, config.ProcessDealTimeout)
	defer cancel()

	deal, found := s.dealStore.GetDeal(processContext, job.DealId)
	if !found {
		inMethodLogger.Error("Process job for unknown deal")
		return fmt.Errorf("%w: %s", ErrDealMissing, job.DealId)
	}

	deckObject, hasDeck := deal.RawFiles[dealModel.FilePitchDeck]
	if !hasDeck {
		return s.dealError(processContext, inMethodLogger, job.DealId, errors.New("no pitch deck on record"))
	}

	if err := s.dealStore.UpdateDealFields(processContext, job.DealId, map[string]any{
		"metadata.status": dealModel.StatusProcessing,
	}); err != nil {
		return s.dealError(processContext, inMethodLogger, job.DealId, fmt.Errorf("mark deal processing: %w", err))
	}

	// Extraction
	pages := s.executeExtractStep(processContext, inMethodLogger, deckObject)

	// Summarization
	summary, err := s.executeSummarizeStep(processContext, inMethodLogger, pages)
	if err != nil {
		return s.dealError(processContext, inMethodLogger, job.DealId, err)
	}

	// Durability point: extracted text and entities survive even if
	// enrichment or the final commit dies.
	if err := s.dealStore.UpdateDealFields(processContext, job.DealId, map[string]any{
		"extracted_text." + dealModel.FilePitchDeck: dealModel.SourceText{
			Raw:     pagesToRaw(pages),
			Concise: summary.Concise,
		},
		"metadata.company_name":  summary.CompanyName,
		"metadata.founder_names": summary.FounderNames,
		"metadata.sector":        summary.Sector,
	}); err != nil {
		return s.dealError(processContext, inMethodLogger, job.DealId, err)
	}

	// Enrichment
	fields := map[string]any{
		"metadata.status":       dealModel.StatusProcessed,
		"metadata.processed_at": time.Now().UTC(),
	}
	if publicData := s.executeEnrichStep(processContext, inMethodLogger, summary); publicData != nil {
		fields["public_data"] = publicData
	}

	if err := s.dealStore.UpdateDealFields(processContext, job.DealId, fields); err != nil {
		return s.dealError(processContext, inMethodLogger, job.DealId, err)
	}

	inMethodLogger.Info("Deal processed", "queuedFor", time.Since(job.CreatedTime).String())
	return nil
}

// GenerateMemo produces the memo draft and its DOCX export for a processed
// deal. The supplied weightage is persisted with the deal, and a repeat call
// replaces the previous memo.
func (s *service) GenerateMemo(ctx context.Context, dealId string, weightage dealModel.Weightage) (dealModel.Deal, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "dealId", dealId)

	deal, found := s.dealStore.GetDeal(ctx, dealId)
	if !found {
		return dealModel.Deal{}, fmt.Errorf("%w: %s", ErrDealMissing, dealId)
	}
	if deal.Metadata.Status != dealModel.StatusProcessed {
		return dealModel.Deal{}, fmt.Errorf("%w: status is %s", ErrNotProcessed, deal.Metadata.Status)
	}

	if err := s.dealStore.UpdateDealFields(ctx, dealId, map[string]any{
		"metadata.weightage": weightage,
	}); err != nil {
		return dealModel.Deal{}, fmt.Errorf("persist weightage: %w", err)
	}
	deal.Metadata.Weightage = &weightage

	draft, err := s.executeMemoStep(ctx, inMethodLogger, deal, weightage)
	if err != nil {
		return dealModel.Deal{}, fmt.Errorf("memo generation: %w", err)
	}

	docxURL, err := s.exporter.ExportMemo(ctx, dealId, deal.Metadata.CompanyName, draft)
	if err != nil {
		return dealModel.Deal{}, fmt.Errorf("memo export: %w", err)
	}

	memo := dealModel.Memo{
		DraftV1:     draft,
		DocxURL:     docxURL,
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.dealStore.UpdateDealFields(ctx, dealId, map[string]any{
		"memo": memo,
	}); err != nil {
		return dealModel.Deal{}, fmt.Errorf("persist memo: %w", err)
	}

	updated, found := s.dealStore.GetDeal(ctx, dealId)
	if !found {
		return dealModel.Deal{}, fmt.Errorf("%w: %s", ErrDealMissing, dealId)
	}
	inMethodLogger.Info("Memo generated", "docx", docxURL)
	return updated, nil
}

// pagesToRaw converts the page slice to the persisted 1-based page map.
func pagesToRaw(pages []string) map[string]string {
	raw := make(map[string]string, len(pages))
	for i, page := range pages {
		raw[strconv.Itoa(i+1)] = page
	}
	return raw
}
