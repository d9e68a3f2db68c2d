package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

// Exporter renders a memo draft to a shareable document.
type Exporter interface {
	ExportMemo(ctx context.Context, dealId string, companyName string, memoText string) (string, error)
}

type docxExporter struct {
	blobStore dealModel.BlobStore
	logger    *logger_i.Logger
}

func NewDocxExporter(blobStore dealModel.BlobStore) Exporter {
	return &docxExporter{
		blobStore: blobStore,
		logger:    logger_i.NewLogger("export"),
	}
}

// ExportMemo renders the memo text into a DOCX file, stores it next to the
// deal's other artifacts and returns a shareable URL for it. Re-export
// overwrites the previous document at the same object path.
func (e *docxExporter) ExportMemo(ctx context.Context, dealId string, companyName string, memoText string) (string, error) {
	log := e.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	var buf bytes.Buffer
	if err := renderMemo(&buf, companyName, memoText); err != nil {
		return "", fmt.Errorf("render memo document: %w", err)
	}

	object := MemoObjectName(dealId)
	if err := e.blobStore.Upload(ctx, object, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "application/vnd.openxmlformats-officedocument.wordprocessingml.document"); err != nil {
		return "", fmt.Errorf("upload memo document: %w", err)
	}

	url, err := e.blobStore.PresignedURL(ctx, object)
	if err != nil {
		return "", fmt.Errorf("sign memo document URL: %w", err)
	}
	log.Info("Memo document exported", "dealId", dealId, "object", object)
	return url, nil
}

// MemoObjectName is the blob object path a deal's memo document lives at.
func MemoObjectName(dealId string) string {
	return fmt.Sprintf("deals/%s/memo.docx", dealId)
}

// renderMemo converts the memo's markdown flavored text into a styled DOCX.
// Heading markers and bold runs cover what the language models actually emit;
// anything else passes through as a plain paragraph.
func renderMemo(buf *bytes.Buffer, companyName string, memoText string) error {
	doc := docx.New().WithDefaultTheme()

	title := "Investment Memo"
	if companyName != "" {
		title = fmt.Sprintf("Investment Memo: %s", companyName)
	}
	doc.AddParagraph().AddText(title).Size("36").Bold()
	doc.AddParagraph()

	for _, line := range strings.Split(memoText, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			doc.AddParagraph()
		case strings.HasPrefix(line, "### "):
			doc.AddParagraph().AddText(strings.TrimPrefix(line, "### ")).Size("26").Bold()
		case strings.HasPrefix(line, "## "):
			doc.AddParagraph().AddText(strings.TrimPrefix(line, "## ")).Size("28").Bold()
		case strings.HasPrefix(line, "# "):
			doc.AddParagraph().AddText(strings.TrimPrefix(line, "# ")).Size("32").Bold()
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			para := doc.AddParagraph()
			para.AddText("• ")
			addRunsToParagraph(para, line[2:])
		default:
			para := doc.AddParagraph()
			addRunsToParagraph(para, line)
		}
	}

	_, err := doc.WriteTo(buf)
	return err
}

// addRunsToParagraph splits a line on ** markers so bold spans survive the
// conversion instead of leaking asterisks into the document.
func addRunsToParagraph(para *docx.Paragraph, line string) {
	parts := strings.Split(line, "**")
	for i, part := range parts {
		if part == "" {
			continue
		}
		run := para.AddText(part)
		if i%2 == 1 {
			run.Bold()
		}
	}
}
