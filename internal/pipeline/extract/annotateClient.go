package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/customHttpClient"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
)

// annotateClient talks to the asynchronous document-annotation OCR service.
// The service reads the input document from the shared blob bucket, runs
// text detection, and writes batched JSON artifacts under the requested
// output prefix; the caller polls the returned operation until done.
type annotateClient struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func newAnnotateClient() *annotateClient {
	return &annotateClient{
		baseURL:  strings.TrimRight(config.OCRBaseURL, "/"),
		apiToken: config.OCRAPIToken,
		http:     customHttpClient.NewPooledClient(60 * time.Second),
	}
}

type annotationRequest struct {
	InputObject  string   `json:"input_object"`
	OutputPrefix string   `json:"output_prefix"`
	BatchSize    int      `json:"batch_size"`
	Features     []string `json:"features"`
}

type annotationStartResponse struct {
	Operation string `json:"operation"`
}

type operationStatus struct {
	Operation string `json:"operation"`
	Done      bool   `json:"done"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *annotateClient) StartAnnotation(ctx context.Context, req annotationRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal annotate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents:annotate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create annotate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("annotate call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read annotate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("annotate returned %d: %s", resp.StatusCode, string(respBody))
	}

	var started annotationStartResponse
	if err := json.Unmarshal(respBody, &started); err != nil {
		return "", fmt.Errorf("parse annotate response: %w", err)
	}
	if started.Operation == "" {
		return "", fmt.Errorf("annotate returned no operation name")
	}
	return started.Operation, nil
}

func (c *annotateClient) GetOperation(ctx context.Context, operation string) (*operationStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+operation, nil)
	if err != nil {
		return nil, fmt.Errorf("create operation request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("operation call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read operation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("operation returned %d: %s", resp.StatusCode, string(respBody))
	}

	var status operationStatus
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("parse operation response: %w", err)
	}
	return &status, nil
}

// WaitForOperation polls until the operation reports done, failed, or the
// context expires. Exponential backoff: 2s -> 4s -> 8s -> 15s (capped).
func (c *annotateClient) WaitForOperation(ctx context.Context, operation string) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.OCRWaitTimeout)
		defer cancel()
	}

	interval := config.OCRPollInitialInterval
	for {
		status, err := c.GetOperation(ctx, operation)
		if err != nil {
			return fmt.Errorf("poll %s: %w", operation, err)
		}
		if status.Done {
			if status.Error != nil {
				return fmt.Errorf("operation %s failed: %s", operation, status.Error.Message)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("poll %s timed out: %w", operation, ctx.Err())
		case <-time.After(interval):
		}

		interval *= 2
		if interval > config.OCRPollMaxInterval {
			interval = config.OCRPollMaxInterval
		}
	}
}

// remoteExtractor coordinates the full async flow: start the annotation,
// wait, read the artifacts back from the blob store.
type remoteExtractor struct {
	client *annotateClient
	blob   dealModel.BlobStore
}

func newRemoteExtractor(blobStore dealModel.BlobStore) *remoteExtractor {
	return &remoteExtractor{
		client: newAnnotateClient(),
		blob:   blobStore,
	}
}

func (r *remoteExtractor) ExtractPages(ctx context.Context, object string) ([]string, error) {
	// keep intermediates under a deterministic, document-scoped prefix so
	// cleanup and concurrent extractions never collide
	safeName := strings.ReplaceAll(path.Dir(object)+"_"+path.Base(object), "/", "_")
	outPrefix := fmt.Sprintf("%s/%s/%s/", config.OCROutputPrefix, safeName, uuid.NewString()[:8])

	operation, err := r.client.StartAnnotation(ctx, annotationRequest{
		InputObject:  object,
		OutputPrefix: outPrefix,
		BatchSize:    config.OCRArtifactBatchSize,
		Features:     []string{"DOCUMENT_TEXT_DETECTION"},
	})
	if err != nil {
		return nil, err
	}

	if err := r.client.WaitForOperation(ctx, operation); err != nil {
		return nil, err
	}

	return parseArtifacts(ctx, r.blob, outPrefix)
}
