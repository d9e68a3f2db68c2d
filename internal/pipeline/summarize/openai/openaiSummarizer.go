package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

type summarizerClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *summarizerClient
var once sync.Once

func GetOpenAISummarizer(ctx context.Context, modelName string, apikey string) summarize.Summarizer {
	once.Do(func() {
		logger = logger_i.NewLogger("summarizer_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is not set")
			return
		}
		openaiClient = &summarizerClient{
			client:    openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI summarizer client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *summarizerClient) Summarize(ctx context.Context, fullText string) (summarize.Summary, error) {
	reply, err := c.generate(ctx, summarize.SummaryPrompt(fullText))
	if err != nil {
		return summarize.Summary{}, fmt.Errorf("openai summarize: %w", err)
	}
	return summarize.ParseSummaryReply(reply), nil
}

func (c *summarizerClient) GenerateMemo(ctx context.Context, deal dealModel.Deal, weightage dealModel.Weightage) (string, error) {
	reply, err := c.generate(ctx, summarize.MemoPrompt(deal, weightage))
	if err != nil {
		return "", fmt.Errorf("openai memo generation: %w", err)
	}
	return reply, nil
}

func (c *summarizerClient) generate(ctx context.Context, prompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarize.AnalystContext),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		log.Error("OpenAI call failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}
