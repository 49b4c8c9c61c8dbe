package http

import (
	"fmt"

	"mailmind_server/core/agent/rag"
	"mailmind_server/core/domain"

	"github.com/gofiber/fiber/v2"
)

// RAGHandler exposes the embedding store directly: the client indexes
// its inbox here and can run raw similarity searches.
type RAGHandler struct {
	store     *rag.Store
	retriever *rag.Retriever
}

func NewRAGHandler(store *rag.Store, retriever *rag.Retriever) *RAGHandler {
	return &RAGHandler{store: store, retriever: retriever}
}

func (h *RAGHandler) Register(app fiber.Router) {
	r := app.Group("/rag")
	r.Post("/similar", h.FindSimilar)
	r.Post("/initialize", h.Initialize)
	r.Get("/stats", h.Stats)
}

type similarRequest struct {
	QueryText      string `json:"query_text"`
	TopK           int    `json:"top_k"`
	ExcludeEmailID string `json:"exclude_email_id"`
	SenderEmail    string `json:"sender_email"`
}

func (h *RAGHandler) FindSimilar(c *fiber.Ctx) error {
	var req similarRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}
	if req.QueryText == "" {
		return ErrorResponse(c, 400, "query_text required")
	}

	results, err := h.retriever.FindSimilar(c.Context(), rag.Query{
		Text:           req.QueryText,
		TopK:           req.TopK,
		ExcludeEmailID: req.ExcludeEmailID,
		SenderFilter:   req.SenderEmail,
	})
	if err != nil {
		return InternalErrorResponse(c, err, "similarity search")
	}

	var sender any
	if req.SenderEmail != "" {
		sender = req.SenderEmail
	}
	return c.JSON(fiber.Map{
		"similar_emails":     results,
		"count":              len(results),
		"rag_enabled":        true,
		"filtered_by_sender": req.SenderEmail != "",
		"sender_email":       sender,
	})
}

type initializeRequest struct {
	Emails []domain.Email `json:"emails"`
}

func (h *RAGHandler) Initialize(c *fiber.Ctx) error {
	var req initializeRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}
	if req.Emails == nil {
		return ErrorResponse(c, 400, "emails array required")
	}

	result := h.store.InitializeBatch(c.Context(), req.Emails)
	stats := h.store.GetStats()

	return c.JSON(fiber.Map{
		"success":   true,
		"stats":     stats,
		"attempted": result.Attempted,
		"succeeded": result.Succeeded,
		"message":   fmt.Sprintf("RAG initialized with %d emails", stats.Count),
	})
}

func (h *RAGHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stats":       h.store.GetStats(),
		"rag_enabled": true,
	})
}
