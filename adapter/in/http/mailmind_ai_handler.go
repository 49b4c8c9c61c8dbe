package http

import (
	"mailmind_server/core/port/in"
	"mailmind_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type AIHandler struct {
	assist in.AssistService
}

func NewAIHandler(assist in.AssistService) *AIHandler {
	return &AIHandler{assist: assist}
}

func (h *AIHandler) Register(app fiber.Router) {
	ai := app.Group("/ai")
	ai.Post("/summarize", h.Summarize)
	ai.Post("/reply", h.Reply)
	ai.Post("/follow-up", h.FollowUp)
	ai.Post("/handle-for-me", h.HandleForMe)
}

// Summarize never surfaces a raw model error to the client: rate
// limits get a 429 with a readable summary, everything else a 500
// with a generic one, so the UI can always render the summary field.
func (h *AIHandler) Summarize(c *fiber.Ctx) error {
	var req in.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	result, err := h.assist.Summarize(c.Context(), req)
	if err != nil {
		if apperr.IsRateLimited(err) {
			return c.Status(429).JSON(fiber.Map{
				"summary": "⚠️ API rate limit reached. Please wait 1 minute and try again.",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"summary": "❌ Error generating summary",
		})
	}

	return c.JSON(result)
}

func (h *AIHandler) Reply(c *fiber.Ctx) error {
	var req in.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	result, err := h.assist.Reply(c.Context(), req)
	if err != nil {
		if apperr.IsRateLimited(err) {
			return AppErrorResponse(c, err)
		}
		return InternalErrorResponse(c, err, "reply generation")
	}

	return c.JSON(result)
}

// FollowUp degrades to a safe default reminder instead of an error
// payload, so the client always has something to schedule.
func (h *AIHandler) FollowUp(c *fiber.Ctx) error {
	var req in.FollowUpRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	fu, err := h.assist.FollowUp(c.Context(), req)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"reminder":             "Follow up on this email",
			"days_until_follow_up": 3,
		})
	}

	return c.JSON(fu)
}

func (h *AIHandler) HandleForMe(c *fiber.Ctx) error {
	var req in.HandleRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	result, err := h.assist.HandleForMe(c.Context(), req)
	if err != nil {
		if apperr.IsRateLimited(err) {
			return AppErrorResponse(c, err)
		}
		return InternalErrorResponse(c, err, "email handling")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"actions":  result.Actions,
		"rag_used": result.RAGUsed,
	})
}
