package summarize

import (
	"strings"
	"testing"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

func TestParseSummaryReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Summary
	}{
		{
			name:  "plain json",
			reply: `{"summary": "A seed stage fintech.", "company_name": "Acme", "founder_names": "Jo Smith", "sector": "fintech"}`,
			want:  Summary{Concise: "A seed stage fintech.", CompanyName: "Acme", FounderNames: "Jo Smith", Sector: "fintech"},
		},
		{
			name:  "markdown fenced",
			reply: "```json\n{\"summary\": \"Fenced.\", \"company_name\": \"Acme\", \"founder_names\": \"\", \"sector\": \"\"}\n```",
			want:  Summary{Concise: "Fenced.", CompanyName: "Acme"},
		},
		{
			name:  "non json degrades to raw concise",
			reply: "  The deck describes a robotics company.  ",
			want:  Summary{Concise: "The deck describes a robotics company."},
		},
		{
			name:  "empty fields tolerated",
			reply: `{"summary": "", "company_name": "", "founder_names": "", "sector": ""}`,
			want:  Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSummaryReply(tt.reply)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummaryPromptIncludesDeckText(t *testing.T) {
	prompt := SummaryPrompt("Page 1: We build rockets")
	if !strings.Contains(prompt, "We build rockets") {
		t.Error("prompt does not carry the deck text")
	}
	if !strings.Contains(prompt, "company_name") {
		t.Error("prompt does not request the entity fields")
	}
}

func TestMemoPromptCarriesWeightage(t *testing.T) {
	deal := dealModel.Deal{Id: "d1", Metadata: dealModel.Metadata{CompanyName: "Acme"}}
	prompt := MemoPrompt(deal, dealModel.Weightage{Team: 0.5, Market: 0.3, Product: 0.2})

	for _, want := range []string{"team=0.50", "market=0.30", "product=0.20", "Acme"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
