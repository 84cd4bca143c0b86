package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prakasam1973/MOM-Tracker/internal/application/services"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// CSRHandler handles CSR project record requests
type CSRHandler struct {
	csrService *services.CSRService
	logger     *logger.Logger
}

// NewCSRHandler creates a new CSR handler
func NewCSRHandler(csrService *services.CSRService, logger *logger.Logger) *CSRHandler {
	return &CSRHandler{
		csrService: csrService,
		logger:     logger,
	}
}

// CreateRecord adds a CSR record
func (h *CSRHandler) CreateRecord(c echo.Context) error {
	var req ports.CSRRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.csrService.Create(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, record)
}

// UpdateRecord replaces a CSR record's fields
func (h *CSRHandler) UpdateRecord(c echo.Context) error {
	var req ports.CSRRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.csrService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, entities.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Record not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteRecord removes a CSR record
func (h *CSRHandler) DeleteRecord(c echo.Context) error {
	if err := h.csrService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Record not found")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Record deleted"})
}

// ListRecords returns records filtered by financial year and NGO
func (h *CSRHandler) ListRecords(c echo.Context) error {
	filter := ports.CSRFilter{
		FinancialYear: c.QueryParam("year"),
		NGOName:       c.QueryParam("ngo"),
	}
	return c.JSON(http.StatusOK, h.csrService.List(filter))
}

// GetSummary aggregates participants and cost for the filtered records
func (h *CSRHandler) GetSummary(c echo.Context) error {
	filter := ports.CSRFilter{
		FinancialYear: c.QueryParam("year"),
		NGOName:       c.QueryParam("ngo"),
	}
	return c.JSON(http.StatusOK, h.csrService.Summary(filter))
}

// GetOptions returns the dropdown option lists for record entry
func (h *CSRHandler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, CSROptionsResponse{
		FinancialYears: entities.FinancialYears,
		NGONames:       entities.NGONames,
		Phases:         entities.Phases,
		Projects:       entities.CSRProjects,
		Statuses:       entities.CSRStatuses,
	})
}

// ProfileHandler handles the user profile document
type ProfileHandler struct {
	profileService *services.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile returns the stored profile, empty when never saved
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, h.profileService.Get())
}

// SaveProfile replaces the stored profile as a whole document
func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	var profile entities.Profile
	if err := c.Bind(&profile); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return c.JSON(http.StatusOK, h.profileService.Save(c.Request().Context(), profile))
}

// ReminderHandler handles reminder requests
type ReminderHandler struct {
	reminderService *services.ReminderService
	logger          *logger.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService *services.ReminderService, logger *logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// CreateReminder adds a reminder
func (h *ReminderHandler) CreateReminder(c echo.Context) error {
	var req ports.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.reminderService.Create(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, reminder)
}

// ListReminders returns all reminders
func (h *ReminderHandler) ListReminders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reminderService.List())
}

// DeleteReminder removes a reminder
func (h *ReminderHandler) DeleteReminder(c echo.Context) error {
	if err := h.reminderService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reminder not found")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Reminder deleted"})
}

// SnoozeReminder pushes a reminder's due time forward and rearms it
func (h *ReminderHandler) SnoozeReminder(c echo.Context) error {
	var req ports.SnoozeReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.reminderService.Snooze(c.Request().Context(), c.Param("id"), req.Minutes)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reminder not found")
	}

	return c.JSON(http.StatusOK, reminder)
}

// Response types

type CSROptionsResponse struct {
	FinancialYears []string `json:"financialYears"`
	NGONames       []string `json:"ngoNames"`
	Phases         []string `json:"phases"`
	Projects       []string `json:"projects"`
	Statuses       []string `json:"statuses"`
}
