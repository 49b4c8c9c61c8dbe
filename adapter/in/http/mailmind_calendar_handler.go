package http

import (
	"mailmind_server/core/domain"
	"mailmind_server/core/port/in"
	"mailmind_server/pkg/apperr"
	"mailmind_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type CalendarHandler struct {
	calendarService in.CalendarService
}

func NewCalendarHandler(calendarService in.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (h *CalendarHandler) Register(app fiber.Router) {
	cal := app.Group("/calendar")
	cal.Post("/extract", h.ExtractEvents)
	cal.Get("/events", h.ListEvents)
	cal.Post("/events", h.CreateEvent)
	cal.Delete("/events/:id", h.DeleteEvent)
}

type extractRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Snippet string `json:"snippet"`
}

// ExtractEvents always answers 200 with an events array; extraction
// failures surface as an empty list plus an error field so the client
// calendar view never breaks on a bad model response.
func (h *CalendarHandler) ExtractEvents(c *fiber.Ctx) error {
	var req extractRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	body := req.Body
	if body == "" {
		body = req.Snippet
	}

	events, err := h.calendarService.ExtractEvents(c.Context(), req.Subject, body)
	if err != nil {
		logger.WithError(err).Error("calendar extraction failed")
		return c.JSON(fiber.Map{
			"events": []domain.CalendarEvent{},
			"error":  apperr.AsAppError(err).Message,
		})
	}

	return c.JSON(fiber.Map{"events": events})
}

func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"events": h.calendarService.ListEvents()})
}

func (h *CalendarHandler) CreateEvent(c *fiber.Ctx) error {
	var ev domain.CalendarEvent
	if err := c.BodyParser(&ev); err != nil {
		return ErrorResponse(c, 400, "invalid request body")
	}

	created, err := h.calendarService.AddEvent(ev)
	if err != nil {
		return AppErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"event": created})
}

func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.calendarService.DeleteEvent(c.Params("id")); err != nil {
		return AppErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
