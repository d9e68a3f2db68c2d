package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":9000"

	//process job buffer limit
	BufferLimit = 100

	//max multipart upload size
	MaxUploadSize = 32 << 20 //32mb

	//how long one background process run may take end to end;
	//must exceed the OCR wait bound below
	ProcessDealTimeout = 15 * time.Minute

	//budget for the terminal error-record write, which must survive an
	//expired process deadline
	ErrorRecordTimeout = 10 * time.Second

	//ocr
	OCRPollInitialInterval = 2 * time.Second
	OCRPollMaxInterval     = 15 * time.Second
	OCRWaitTimeout         = 10 * time.Minute
	OCRArtifactBatchSize   = 5
	OCROutputPrefix        = "ocr-output"

	//summarizer
	GeminiModelName  = "gemini-2.5-flash-lite-preview-09-2025"
	OpenAIModelName  = "gpt-4o-mini"
	ModelTemperature = 0.7

	//enrichment
	SearchTimeout     = 30 * time.Second
	SearchMaxFindings = 5

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisDealStore = 0

	//deal records are operator-deleted, never expired
	RedisDealStoreTTL = time.Duration(0)
)

// Secrets and deploy-specific endpoints come from the environment; the
// constants above are the development defaults.
var (
	RedisPassword = os.Getenv("REDIS_PASSWORD")

	AuthToken    = os.Getenv("AUTH_TOKEN")
	NoAuthBypass = os.Getenv("AUTH_TOKEN") == ""

	MinioEndpoint  = getEnv("MINIO_ENDPOINT", "127.0.0.1:9090")
	MinioAccessKey = os.Getenv("MINIO_ACCESS_KEY")
	MinioSecretKey = os.Getenv("MINIO_SECRET_KEY")
	MinioBucket    = getEnv("MINIO_BUCKET", "dealdesk")
	MinioUseSSL    = os.Getenv("MINIO_USE_SSL") == "true"

	//"remote" uses the OCR annotation service, "local" parses in-process
	OCRProvider = getEnv("OCR_PROVIDER", "remote")
	OCRBaseURL  = getEnv("OCR_BASE_URL", "http://127.0.0.1:8400/v1")
	OCRAPIToken = os.Getenv("OCR_API_TOKEN")

	SummarizerProvider = getEnv("SUMMARIZER_PROVIDER", "gemini")
	GeminiAPIKey       = os.Getenv("GEMINI_API_KEY")
	OpenAIAPIKey       = os.Getenv("OPENAI_API_KEY")

	SearchBaseURL = getEnv("SEARCH_BASE_URL", "https://api.websearch.dev/v1")
	SearchAPIKey  = os.Getenv("SEARCH_API_KEY")
)

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
