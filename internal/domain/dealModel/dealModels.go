package dealModel

import (
	"context"
	"io"
	"time"
)

type DealStatus string

const (
	StatusUploading  DealStatus = "uploading"
	StatusProcessing DealStatus = "processing"
	StatusProcessed  DealStatus = "processed"
	StatusError      DealStatus = "error"
)

// statusRank orders the forward-only lifecycle. Error is terminal and
// reachable from any non-terminal state.
var statusRank = map[DealStatus]int{
	StatusUploading:  0,
	StatusProcessing: 1,
	StatusProcessed:  2,
}

// CanTransition reports whether a status write from current to next is legal.
// Backward moves are rejected, and nothing leaves error except deletion.
func CanTransition(current, next DealStatus) bool {
	if current == StatusError {
		return false
	}
	if next == StatusError {
		return true
	}
	curRank, okCur := statusRank[current]
	nextRank, okNext := statusRank[next]
	if !okCur || !okNext {
		return false
	}
	return nextRank >= curRank
}

// FilePitchDeck is the logical role of the uploaded source document in
// Deal.RawFiles and Deal.ExtractedText.
const FilePitchDeck = "pitch_deck"

type Deal struct {
	Id            string                   `json:"deal_id"`
	Metadata      Metadata                 `json:"metadata"`
	RawFiles      map[string]string        `json:"raw_files,omitempty"`
	ExtractedText map[string]SourceText    `json:"extracted_text,omitempty"`
	PublicData    *PublicData              `json:"public_data,omitempty"`
	Memo          *Memo                    `json:"memo,omitempty"`
}

type Metadata struct {
	Status       DealStatus `json:"status"`
	CompanyName  string     `json:"company_name,omitempty"`
	FounderNames string     `json:"founder_names,omitempty"`
	Sector       string     `json:"sector,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ProcessedAt  time.Time  `json:"processed_at,omitzero"`
	Error        string     `json:"error,omitempty"`
	Weightage    *Weightage `json:"weightage,omitempty"`
}

// Weightage is the user-supplied relative emphasis for memo generation.
type Weightage struct {
	Team    float64 `json:"team"`
	Market  float64 `json:"market"`
	Product float64 `json:"product"`
}

// SourceText holds extraction output for one source document: page-index
// (1-based, as strings for the JSON document) to page text, plus the
// condensed summary produced alongside it.
type SourceText struct {
	Raw     map[string]string `json:"raw"`
	Concise string            `json:"concise"`
}

type PublicData struct {
	Company    []Finding `json:"company"`
	Founders   []Finding `json:"founders"`
	Sector     []Finding `json:"sector"`
	GatheredAt time.Time `json:"gathered_at"`
}

type Finding struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Memo struct {
	DraftV1     string    `json:"draft_v1"`
	DocxURL     string    `json:"docx_url"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ProcessJob is the unit handed to the worker pool after upload. One job is
// enqueued per deal, exactly once, so process executions never interleave
// for the same deal id.
type ProcessJob struct {
	DealId      string    `json:"deal_id"`
	TraceId     string    `json:"trace_id"`
	CreatedTime time.Time `json:"created_time"`
}

// DealStore is the persisted deal record abstraction. UpdateDealFields is a
// merge-patch keyed by dotted field paths ("metadata.status",
// "extracted_text.pitch_deck", ...) so concurrent writers touching different
// fields of the same deal never clobber each other.
type DealStore interface {
	CreateDeal(ctx context.Context, deal Deal) error
	GetDeal(ctx context.Context, dealId string) (Deal, bool)
	UpdateDealFields(ctx context.Context, dealId string, fields map[string]any) error
	ListDeals(ctx context.Context) ([]Deal, error)
	DeleteDeal(ctx context.Context, dealId string) error
}

// BlobStore is durable byte storage addressed by object name.
type BlobStore interface {
	Upload(ctx context.Context, object string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, object string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, object string) error
	PresignedURL(ctx context.Context, object string) (string, error)
}
