package pipeline_test

import (
	"context"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize"
)

// MockExtractor implements extract.Extractor
type MockExtractor struct {
	OnExtractPages func(ctx context.Context, object string) ([]string, error)
}

func (m *MockExtractor) ExtractPages(ctx context.Context, object string) ([]string, error) {
	if m.OnExtractPages != nil {
		return m.OnExtractPages(ctx, object)
	}
	return []string{"Acme builds rockets", "Founded by Jo Smith"}, nil
}

// MockSummarizer implements summarize.Summarizer
type MockSummarizer struct {
	OnSummarize    func(ctx context.Context, fullText string) (summarize.Summary, error)
	OnGenerateMemo func(ctx context.Context, deal dealModel.Deal, weightage dealModel.Weightage) (string, error)
}

func (m *MockSummarizer) Summarize(ctx context.Context, fullText string) (summarize.Summary, error) {
	if m.OnSummarize != nil {
		return m.OnSummarize(ctx, fullText)
	}
	return summarize.Summary{
		Concise:      "Acme is a rocket startup.",
		CompanyName:  "Acme",
		FounderNames: "Jo Smith",
		Sector:       "aerospace",
	}, nil
}

func (m *MockSummarizer) GenerateMemo(ctx context.Context, deal dealModel.Deal, weightage dealModel.Weightage) (string, error) {
	if m.OnGenerateMemo != nil {
		return m.OnGenerateMemo(ctx, deal, weightage)
	}
	return "Memo draft for " + deal.Metadata.CompanyName, nil
}

// MockGatherer implements enrich.Gatherer
type MockGatherer struct {
	OnGather func(ctx context.Context, companyName string, founderNames string, sector string) dealModel.PublicData
}

func (m *MockGatherer) Gather(ctx context.Context, companyName string, founderNames string, sector string) dealModel.PublicData {
	if m.OnGather != nil {
		return m.OnGather(ctx, companyName, founderNames, sector)
	}
	return dealModel.PublicData{
		Company: []dealModel.Finding{{Title: "Acme in the news", URL: "https://example.com/acme"}},
	}
}

// MockExporter implements export.Exporter
type MockExporter struct {
	OnExportMemo func(ctx context.Context, dealId string, companyName string, memoText string) (string, error)
}

func (m *MockExporter) ExportMemo(ctx context.Context, dealId string, companyName string, memoText string) (string, error) {
	if m.OnExportMemo != nil {
		return m.OnExportMemo(ctx, dealId, companyName, memoText)
	}
	return "https://blob.example.com/deals/" + dealId + "/memo.docx", nil
}
