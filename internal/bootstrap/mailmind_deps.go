package bootstrap

import (
	"mailmind_server/config"
	"mailmind_server/core/agent/llm"
	"mailmind_server/core/agent/rag"
	"mailmind_server/core/service/assist"
	"mailmind_server/core/service/calendar"
	"mailmind_server/core/service/search"
	"mailmind_server/pkg/logger"
)

// Dependencies wires the whole object graph. Everything lives in
// process memory; there is nothing to connect to besides the LLM APIs.
type Dependencies struct {
	Config *config.Config

	// Retrieval engine
	Embedder  *rag.HashEmbedder
	Store     *rag.Store
	Retriever *rag.Retriever

	// LLM clients
	GroqClient       *llm.Client
	OpenRouterClient *llm.Client

	// Services
	AssistService   *assist.Service
	SearchService   *search.Service
	CalendarService *calendar.Service
}

func NewDependencies(cfg *config.Config) *Dependencies {
	embedder := rag.NewHashEmbedder(cfg.RAGDimension)
	store := rag.NewStore(embedder, cfg.RAGMaxRecords)
	retriever := rag.NewRetriever(embedder, store)

	var groqClient, openRouterClient *llm.Client
	if cfg.GroqAPIKey != "" {
		groqClient = llm.NewGroqClient(llm.ClientConfig{
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			Timeout: cfg.LLMTimeout,
		})
	} else {
		logger.Warn("GROQ_API_KEY not set, follow-up and action-plan routes will fail")
	}
	if cfg.OpenRouterAPIKey != "" {
		openRouterClient = llm.NewOpenRouterClient(llm.ClientConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			Model:   cfg.OpenRouterModel,
			Timeout: cfg.LLMTimeout,
			Referer: cfg.OpenRouterReferer,
			Title:   "MailMind",
		})
	} else {
		logger.Warn("OPENROUTER_API_KEY not set, summarize and reply routes will fail")
	}

	return &Dependencies{
		Config:           cfg,
		Embedder:         embedder,
		Store:            store,
		Retriever:        retriever,
		GroqClient:       groqClient,
		OpenRouterClient: openRouterClient,
		AssistService:    assist.NewService(openRouterClient, groqClient, retriever, cfg.RAGTopK),
		SearchService:    search.NewService(),
		CalendarService:  calendar.NewService(groqClient),
	}
}
