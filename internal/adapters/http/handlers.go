package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prakasam1973/MOM-Tracker/internal/application/services"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/calendar"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// EventHandler handles calendar event requests
type EventHandler struct {
	eventService *services.EventService
	statsService *services.StatsService
	exportSvc    *services.ExportService
	notifier     *services.SlackNotifier
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, statsService *services.StatsService, exportSvc *services.ExportService, notifier *services.SlackNotifier, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		statsService: statsService,
		exportSvc:    exportSvc,
		notifier:     notifier,
		logger:       logger,
	}
}

// ListEvents returns events, optionally filtered to one date or a range.
// With neither filter the full collection is returned.
func (h *EventHandler) ListEvents(c echo.Context) error {
	if dateStr := c.QueryParam("date"); dateStr != "" {
		date, err := calendar.ParseDate(dateStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date parameter")
		}
		return c.JSON(http.StatusOK, ports.DaySchedule{
			Date:   calendar.FormatDate(date),
			Events: h.eventService.EventsOn(date),
		})
	}

	fromStr, toStr := c.QueryParam("from"), c.QueryParam("to")
	if fromStr != "" || toStr != "" {
		from, err := calendar.ParseDate(fromStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from parameter")
		}
		to, err := calendar.ParseDate(toStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to parameter")
		}
		return c.JSON(http.StatusOK, h.eventService.EventsInRange(from, to))
	}

	return c.JSON(http.StatusOK, h.eventService.List())
}

// CreateEvent handles event creation
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create event failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, event)
}

// GetEvent returns a single event by ID
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventService.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEvent applies a partial update to an event
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var req ports.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	event, err := h.eventService.UpdateFields(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		h.logger.Errorw("Update event failed", "error", err, "event_id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, event)
}

// ChangeStatus moves an event through its lifecycle
func (h *EventHandler) ChangeStatus(c echo.Context) error {
	var req ports.ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.ChangeStatus(c.Request().Context(), c.Param("id"), entities.EventStatus(req.Status))
	if err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, event)
}

// RescheduleEvent moves an event to a new date and time slot
func (h *EventHandler) RescheduleEvent(c echo.Context) error {
	var req ports.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.eventService.Reschedule(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, entities.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if err := h.eventService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted"})
}

// ClearEvents removes every stored event
func (h *EventHandler) ClearEvents(c echo.Context) error {
	if err := h.eventService.ClearAll(c.Request().Context()); err != nil {
		h.logger.Errorw("Clear events failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to clear events")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "All events cleared"})
}

// GetWeek returns a seven-day window of day buckets. anchor defaults to
// today and offset shifts the window by whole weeks.
func (h *EventHandler) GetWeek(c echo.Context) error {
	var anchor time.Time
	if anchorStr := c.QueryParam("anchor"); anchorStr != "" {
		parsed, err := calendar.ParseDate(anchorStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid anchor parameter")
		}
		anchor = parsed
	}

	offset := 0
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid offset parameter")
		}
		offset = parsed
	}

	return c.JSON(http.StatusOK, h.eventService.Week(anchor, offset))
}

// GetStats returns the derived event summary
func (h *EventHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.statsService.Summary())
}

// ExportICS streams the calendar in iCalendar format
func (h *EventHandler) ExportICS(c echo.Context) error {
	fromStr, toStr := c.QueryParam("from"), c.QueryParam("to")
	var payload string
	if fromStr != "" && toStr != "" {
		from, err := calendar.ParseDate(fromStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from parameter")
		}
		to, err := calendar.ParseDate(toStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid to parameter")
		}
		payload = h.exportSvc.ICSRange(from, to)
	} else {
		payload = h.exportSvc.ICS()
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.ics"`)
	return c.Blob(http.StatusOK, "text/calendar", []byte(payload))
}

// ShareDay posts one day's schedule to the configured Slack webhook
func (h *EventHandler) ShareDay(c echo.Context) error {
	var req ShareDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
	}

	if err := services.ShareDay(c.Request().Context(), h.notifier, h.eventService, date); err != nil {
		h.logger.Errorw("Share day failed", "error", err, "date", req.Date)
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Schedule shared"})
}

// Request/Response types

type ShareDayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
