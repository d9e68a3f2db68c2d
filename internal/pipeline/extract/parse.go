package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

var parseLogger = logger_i.NewLogger("Extraction parse")

// One artifact file holds annotation responses for a batch of pages.
type annotateArtifact struct {
	Responses []annotateResponse `json:"responses"`
}

type annotateResponse struct {
	FullTextAnnotation *fullTextAnnotation `json:"fullTextAnnotation,omitempty"`
	Pages              []annotatedPage     `json:"pages,omitempty"`
}

type fullTextAnnotation struct {
	Text string `json:"text"`
}

type annotatedPage struct {
	Blocks []annotatedBlock `json:"blocks"`
}

type annotatedBlock struct {
	Paragraphs []annotatedParagraph `json:"paragraphs"`
}

type annotatedParagraph struct {
	Words []annotatedWord `json:"words"`
}

type annotatedWord struct {
	Symbols []annotatedSymbol `json:"symbols"`
}

type annotatedSymbol struct {
	Text string `json:"text"`
}

// parseArtifacts reads the OCR output artifacts under prefix and returns
// page texts in document order. Artifact names are sorted lexicographically
// before concatenation (the service numbers them accordingly), anything
// that is not a .json artifact is ignored, and consumed artifacts are
// deleted best-effort.
func parseArtifacts(ctx context.Context, blobStore dealModel.BlobStore, prefix string) ([]string, error) {
	names, err := blobStore.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list artifacts under %s: %w", prefix, err)
	}
	sort.Strings(names)

	var pages []string
	for _, name := range names {
		if !strings.HasSuffix(name, ".json") {
			continue
		}

		artifact, err := readArtifact(ctx, blobStore, name)
		if err != nil {
			return nil, err
		}

		for _, resp := range artifact.Responses {
			pages = append(pages, pageText(resp))
		}

		// keep the bucket tidy; a failed delete only costs storage
		if err := blobStore.Delete(ctx, name); err != nil {
			parseLogger.Warn("Could not delete OCR artifact", "object", name, "error", err)
		}
	}
	return pages, nil
}

func readArtifact(ctx context.Context, blobStore dealModel.BlobStore, name string) (*annotateArtifact, error) {
	reader, err := blobStore.Download(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("download artifact %s: %w", name, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}

	var artifact annotateArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", name, err)
	}
	return &artifact, nil
}

// pageText prefers the full text field; when the service omits it the page
// is rebuilt from the block -> paragraph -> word -> symbol hierarchy. Blank
// pages come back as "" rather than failing the batch.
func pageText(resp annotateResponse) string {
	if resp.FullTextAnnotation != nil && resp.FullTextAnnotation.Text != "" {
		return strings.TrimSpace(resp.FullTextAnnotation.Text)
	}

	var lines []string
	for _, page := range resp.Pages {
		for _, block := range page.Blocks {
			for _, para := range block.Paragraphs {
				words := make([]string, 0, len(para.Words))
				for _, word := range para.Words {
					var sb strings.Builder
					for _, symbol := range word.Symbols {
						sb.WriteString(symbol.Text)
					}
					words = append(words, sb.String())
				}
				lines = append(lines, strings.Join(words, " "))
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
