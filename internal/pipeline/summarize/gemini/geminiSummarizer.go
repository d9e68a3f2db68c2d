package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

type summarizerClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *summarizerClient
var once sync.Once

func GetGeminiSummarizer(ctx context.Context, modelName string, apikey string) summarize.Summarizer {
	once.Do(func() {
		logger = logger_i.NewLogger("summarizer_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &summarizerClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return
	}

	geminiClient = &summarizerClient{client: c, modelName: modelName}
	logger.Info("Gemini summarizer client created", "model", modelName)
	go closeClient(ctx, geminiClient)
}

func (c *summarizerClient) Summarize(ctx context.Context, fullText string) (summarize.Summary, error) {
	reply, err := c.generate(ctx, summarize.SummaryPrompt(fullText))
	if err != nil {
		return summarize.Summary{}, fmt.Errorf("gemini summarize: %w", err)
	}
	return summarize.ParseSummaryReply(reply), nil
}

func (c *summarizerClient) GenerateMemo(ctx context.Context, deal dealModel.Deal, weightage dealModel.Weightage) (string, error) {
	reply, err := c.generate(ctx, summarize.MemoPrompt(deal, weightage))
	if err != nil {
		return "", fmt.Errorf("gemini memo generation: %w", err)
	}
	return reply, nil
}

func (c *summarizerClient) generate(ctx context.Context, prompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: summarize.AnalystContext},
		},
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{SystemInstruction: systemInstruction},
	)
	if err != nil {
		log.Error("Gemini call failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, c *summarizerClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini summarizer client")
	c.client = nil
	c.modelName = ""
}
