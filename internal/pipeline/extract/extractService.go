package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

// Extractor turns a stored document into ordered per-page text.
// Implementations may fail; the Service below is what the pipeline calls
// and it never does.
type Extractor interface {
	ExtractPages(ctx context.Context, object string) ([]string, error)
}

// NewExtractor selects the provider from config: "remote" drives the async
// OCR annotation service, "local" parses the document in-process.
func NewExtractor(blobStore dealModel.BlobStore) (Extractor, error) {
	switch config.OCRProvider {
	case "remote", "":
		return newRemoteExtractor(blobStore), nil
	case "local":
		return newLocalExtractor(blobStore), nil
	default:
		return nil, fmt.Errorf("extract: unknown provider %q", config.OCRProvider)
	}
}

type Service struct {
	extractor Extractor
	logger    *logger_i.Logger
}

func NewService(extractor Extractor) *Service {
	return &Service{
		extractor: extractor,
		logger:    logger_i.NewLogger("Extraction"),
	}
}

// Extract runs text extraction with the configured provider and collapses
// every failure mode to the single-empty-page sentinel, so the pipeline can
// continue on its empty-text codepath instead of getting stuck. The wait is
// bounded; a document that takes longer than the OCR timeout degrades to
// the sentinel as well.
func (s *Service) Extract(ctx context.Context, object string) []string {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "object", object)

	waitCtx, cancel := context.WithTimeout(ctx, config.OCRWaitTimeout)
	defer cancel()

	pages, err := s.extractor.ExtractPages(waitCtx, object)
	if err != nil {
		log.Error("Extraction failed, continuing with empty text", "error", err)
		return []string{""}
	}
	if len(pages) == 0 {
		log.Warn("Extraction produced no pages")
		return []string{""}
	}
	return pages
}

// JoinPages renders the page list the way the summarizer consumes it.
// Blank pages are skipped from the joined text but keep their index.
func JoinPages(pages []string) string {
	var sb strings.Builder
	for i, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Page %d: %s", i+1, page)
	}
	return sb.String()
}
