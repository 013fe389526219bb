package bootstrap

import (
	"log"
	"os"

	"fundsight-be/internal/config"
	"fundsight-be/internal/controller"
	"fundsight-be/internal/pkg/logger"
	"fundsight-be/internal/repository/unitofwork"
	"fundsight-be/internal/service"
	"fundsight-be/pkg/chunker"
	"fundsight-be/pkg/embedding"
	"fundsight-be/pkg/extract"
	"fundsight-be/pkg/llm/factory"
	"fundsight-be/pkg/metrics"
	pktNats "fundsight-be/pkg/nats"
	"fundsight-be/pkg/rag/query"
	"fundsight-be/pkg/rag/response"
	"fundsight-be/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FundController     controller.IFundController
	DocumentController controller.IDocumentController
	QueryController    controller.IQueryController

	// Background services (exposed for main.go to run)
	IngestionConsumerService service.IIngestionConsumerService

	// Shared facades
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	stdLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, "")
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	metricsService := metrics.NewCached(
		metrics.NewHTTPClient(cfg.Metrics.BaseURL),
		cfg.Metrics.CacheTTL,
	)

	// 5. RAG wiring
	candidateSource := service.NewChunkCandidateSource(uowFactory)
	searchEngine := search.NewEngine(embeddingProvider, candidateSource, cfg.Rag.RelevanceThreshold, stdLogger)
	generator := response.NewGenerator(llmProvider, stdLogger)
	orchestrator := query.NewOrchestrator(searchEngine, metricsService, generator, cfg.Rag.TopK, stdLogger)

	chunkCfg := chunker.Config{
		ChunkSize: cfg.Rag.ChunkSize,
		Overlap:   cfg.Rag.ChunkOverlap,
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub, cfg.Storage.UploadDir, sysLogger)
	ingestionService := service.NewIngestionConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		uowFactory,
		extract.NewJSONOpener(),
		embeddingProvider,
		chunkCfg,
		natsPub,
		sysLogger,
		stdLogger,
	)
	fundService := service.NewFundService(uowFactory)
	queryService := service.NewQueryService(orchestrator)

	// 7. Controllers
	return &Container{
		FundController:           controller.NewFundController(fundService, documentService),
		DocumentController:       controller.NewDocumentController(documentService),
		QueryController:          controller.NewQueryController(queryService),
		IngestionConsumerService: ingestionService,
		Logger:                   sysLogger,
	}
}
