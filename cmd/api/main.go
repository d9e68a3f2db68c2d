// @title           Deal Desk API
// @version         1.0
// @description     This API generates investor-ready memos from uploaded pitch materials
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vantagecap/dealdesk/internal/blob"
	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/data/store"
	dealmodel "github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/internal/handlers"
	"github.com/vantagecap/dealdesk/internal/job"
	"github.com/vantagecap/dealdesk/internal/pipeline"
	"github.com/vantagecap/dealdesk/internal/pipeline/enrich"
	"github.com/vantagecap/dealdesk/internal/pipeline/export"
	"github.com/vantagecap/dealdesk/internal/pipeline/extract"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize/gemini"
	"github.com/vantagecap/dealdesk/internal/pipeline/summarize/openai"
	"github.com/vantagecap/dealdesk/internal/server"
	"github.com/vantagecap/dealdesk/internal/worker"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan dealmodel.ProcessJob, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//deal store with in-memory fallback
	var dealStore dealmodel.DealStore
	if redisDealStore := store.GetRedisDealStore(serviceContext); redisDealStore != nil {
		dealStore = redisDealStore
	} else {
		logger.Error("Redis deal store is offline, falling back to in-memory store")
		dealStore = store.InitInMemoryDealStore()
	}

	//blob store with in-memory fallback
	blobStore := blob.GetMinioBlobStore(serviceContext)
	if blobStore == nil {
		logger.Error("Blob store is offline, falling back to in-memory storage")
		blobStore = blob.InitInMemoryBlobStore()
	}

	extractor, err := extract.NewExtractor(blobStore)
	if err != nil {
		logger.Error("Extractor failed to initialize. Shutting down.", "error", err)
		return
	}
	extractService := extract.NewService(extractor)

	var summarizer summarize.Summarizer
	switch config.SummarizerProvider {
	case "openai":
		summarizer = openai.GetOpenAISummarizer(serviceContext, config.OpenAIModelName, config.OpenAIAPIKey)
	default:
		summarizer = gemini.GetGeminiSummarizer(serviceContext, config.GeminiModelName, config.GeminiAPIKey)
	}
	if summarizer == nil {
		logger.Error("Summarizer failed to initialize. Shutting down.", "provider", config.SummarizerProvider)
		return
	}

	var gatherer enrich.Gatherer
	if searchClient := enrich.NewSearchClient(); searchClient != nil {
		gatherer = enrich.NewService(searchClient)
	} else {
		logger.Warn("No search API key configured, public data enrichment is disabled")
	}

	exporter := export.NewDocxExporter(blobStore)

	pipelineService := pipeline.NewService(dealStore, extractService, summarizer, gatherer, exporter)

	//init job service
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		DealStore:         dealStore,
		BlobStore:         blobStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	handlers.InitDealHandler(service, pipelineService)

	//init worker pool
	worker.InitServices(service, pipelineService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
