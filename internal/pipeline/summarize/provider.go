package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

// Summary is the structured result of condensing a pitch deck: the concise
// narrative plus the extracted entity fields. All fields may be empty when
// the source text is sparse; none of them is ever required.
type Summary struct {
	Concise      string `json:"summary"`
	CompanyName  string `json:"company_name"`
	FounderNames string `json:"founder_names"`
	Sector       string `json:"sector"`
}

// Summarizer is the LLM contract the pipeline depends on.
type Summarizer interface {
	// Summarize condenses raw extracted text and pulls out entity fields.
	// It must tolerate empty input and only fail on transport errors.
	Summarize(ctx context.Context, fullText string) (Summary, error)
	// GenerateMemo renders a full investment memo from the deal record,
	// weighting section emphasis by the user-supplied configuration.
	GenerateMemo(ctx context.Context, deal dealModel.Deal, weightage dealModel.Weightage) (string, error)
}

// AnalystContext is the shared system instruction for both providers.
const AnalystContext = "You are an investment analyst assistant. Keep the tone professional and factual. If information is missing from the source material, say so instead of inventing it."

func SummaryPrompt(fullText string) string {
	var sb strings.Builder
	sb.WriteString("Below is the text extracted from a startup pitch deck, page by page.\n")
	sb.WriteString("Reply with a single JSON object and nothing else, using exactly these keys:\n")
	sb.WriteString(`{"summary": "<a concise narrative summary of the deck>", "company_name": "<the company name>", "founder_names": "<comma separated founder names>", "sector": "<the company's sector>"}` + "\n")
	sb.WriteString("Use an empty string for any field the deck does not reveal.\n\n")
	sb.WriteString("Deck text:\n")
	sb.WriteString(fullText)
	return sb.String()
}

func MemoPrompt(deal dealModel.Deal, weightage dealModel.Weightage) string {
	dealJSON, err := json.MarshalIndent(deal, "", "  ")
	if err != nil {
		dealJSON = []byte("{}")
	}

	var sb strings.Builder
	sb.WriteString("Write an investor-ready investment memo for the deal described by the record below.\n")
	sb.WriteString("Structure the memo with sections for team, market and product, plus an overall recommendation.\n")
	fmt.Fprintf(&sb, "Weight the depth of analysis by these relative emphasis values: team=%.2f, market=%.2f, product=%.2f.\n", weightage.Team, weightage.Market, weightage.Product)
	sb.WriteString("Base every claim on the extracted text and the public data findings in the record.\n\n")
	sb.WriteString("Deal record:\n")
	sb.Write(dealJSON)
	return sb.String()
}

// ParseSummaryReply decodes the model's JSON reply, tolerating markdown
// fencing. A reply that is not the requested JSON degrades to using the raw
// reply as the concise summary with empty entity fields; only the caller's
// transport errors are real failures.
func ParseSummaryReply(reply string) Summary {
	trimmed := strings.TrimSpace(reply)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var summary Summary
	if err := json.Unmarshal([]byte(trimmed), &summary); err != nil {
		return Summary{Concise: strings.TrimSpace(reply)}
	}
	return summary
}
