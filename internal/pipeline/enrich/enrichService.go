package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

// Gatherer collects public web findings for the entities pulled out of a
// pitch deck. Lookups are best effort: a failing or empty query never fails
// the whole gather, it just leaves that section empty.
type Gatherer interface {
	Gather(ctx context.Context, companyName string, founderNames string, sector string) dealModel.PublicData
}

type Service struct {
	search Searcher
	logger *logger_i.Logger
}

// Searcher is the web search contract Gather runs its queries through.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]dealModel.Finding, error)
}

func NewService(search Searcher) *Service {
	return &Service{
		search: search,
		logger: logger_i.NewLogger("enrich"),
	}
}

func (s *Service) Gather(ctx context.Context, companyName string, founderNames string, sector string) dealModel.PublicData {
	data := dealModel.PublicData{GatheredAt: time.Now().UTC()}
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if companyName != "" {
		data.Company = s.lookup(ctx, log, "company", fmt.Sprintf("%q startup company overview funding", companyName))
	}
	if founderNames != "" {
		data.Founders = s.lookup(ctx, log, "founders", fmt.Sprintf("%s founder background %s", founderNames, companyName))
	}
	if sector != "" {
		data.Sector = s.lookup(ctx, log, "sector", fmt.Sprintf("%s market size trends %d", sector, time.Now().Year()))
	}
	return data
}

// lookup runs one search query with its own timeout. Errors are absorbed so
// one dead section never poisons the others.
func (s *Service) lookup(ctx context.Context, log *logger_i.Logger, section string, query string) []dealModel.Finding {
	lookupCtx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	findings, err := s.search.Search(lookupCtx, strings.TrimSpace(query), config.SearchMaxFindings)
	if err != nil {
		log.Warn("Public data lookup failed", "section", section, "error", err)
		return nil
	}
	log.Debug("Public data lookup complete", "section", section, "findings", len(findings))
	return findings
}
