package http

import (
	"mailmind_server/core/domain"
	"mailmind_server/core/service/search"

	"github.com/gofiber/fiber/v2"
)

// SearchHandler filters and groups emails the client sends along with
// the request. The server holds no mailbox, so search is a pure
// function over the supplied list.
type SearchHandler struct {
	searchService *search.Service
}

func NewSearchHandler(searchService *search.Service) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Register(app fiber.Router) {
	s := app.Group("/search")
	s.Post("/emails", h.SearchEmails)
}

type searchRequest struct {
	Emails   []domain.Email `json:"emails"`
	GroupBy  string         `json:"group_by,omitempty"` // sender, project or thread
	ThreadOf *domain.Email  `json:"thread_of,omitempty"`
	search.Filter
}

func (h *SearchHandler) SearchEmails(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}
	if req.Emails == nil {
		return ErrorResponse(c, 400, "emails array required")
	}

	filtered := h.searchService.FilterEmails(req.Emails, req.Filter)

	resp := fiber.Map{
		"emails": filtered,
		"count":  len(filtered),
	}

	switch req.GroupBy {
	case "sender":
		resp["groups"] = h.searchService.GroupBySender(filtered)
	case "project":
		resp["groups"] = h.searchService.GroupByProject(filtered)
	case "thread":
		if req.ThreadOf == nil {
			return ErrorResponse(c, 400, "thread_of required when group_by is thread")
		}
		resp["emails"] = h.searchService.Thread(filtered, *req.ThreadOf)
		resp["count"] = len(resp["emails"].([]domain.Email))
	case "":
	default:
		return ErrorResponse(c, 400, "group_by must be sender, project or thread")
	}

	return c.JSON(resp)
}
