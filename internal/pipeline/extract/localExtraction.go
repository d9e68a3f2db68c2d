package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

var localLogger = logger_i.NewLogger("Extraction local")

// localExtractor parses the document in-process instead of calling the OCR
// service. Scanned decks come back empty this way; it exists for dev setups
// and text-native documents.
type localExtractor struct {
	blob dealModel.BlobStore
}

func newLocalExtractor(blobStore dealModel.BlobStore) *localExtractor {
	return &localExtractor{blob: blobStore}
}

func (l *localExtractor) ExtractPages(ctx context.Context, object string) ([]string, error) {
	localPath, cleanup, err := l.downloadToTemp(ctx, object)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	switch strings.ToLower(filepath.Ext(object)) {
	case ".pdf":
		return extractPDF(localPath)
	case ".docx", ".txt", ".rtf":
		return extractDocxTxtRtf(localPath)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", object)
	}
}

func (l *localExtractor) downloadToTemp(ctx context.Context, object string) (string, func(), error) {
	reader, err := l.blob.Download(ctx, object)
	if err != nil {
		return "", nil, err
	}
	defer reader.Close()

	tempFile, err := os.CreateTemp("", "extract-*"+filepath.Ext(object))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tempFile, reader); err != nil {
		tempFile.Close()
		os.Remove(tempFile.Name())
		return "", nil, fmt.Errorf("stage %s locally: %w", object, err)
	}
	tempFile.Close()

	return tempFile.Name(), func() { os.Remove(tempFile.Name()) }, nil
}

func extractPDF(path string) ([]string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := f.NumPage()
	localLogger.Debug("extractPDF", "number of pages", numPages)

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// blank entry keeps page numbering intact
			localLogger.Error("Error parsing page content", "page", i, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}
	return pages, nil
}

// cat reads .odt, .docx, .rtf and plaintext; it has no page tracking so the
// whole document lands on page one.
func extractDocxTxtRtf(path string) ([]string, error) {
	text, err := cat.File(path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}
	return []string{text}, nil
}

// protectExtract bounds a single page parse; dslipak/pdf can hang on
// malformed content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("page extraction timeout")
	}
}
