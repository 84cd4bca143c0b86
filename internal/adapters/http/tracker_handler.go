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

// AttendanceHandler handles attendance tracker requests
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	logger            *logger.Logger
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *services.AttendanceService, logger *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// MarkAttendance records one day's attendance
func (h *AttendanceHandler) MarkAttendance(c echo.Context) error {
	var req ports.MarkAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.attendanceService.Mark(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrAlreadyMarked) {
			return echo.NewHTTPError(http.StatusConflict, "Attendance already marked for this date")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, record)
}

// ListAttendance returns records filtered by month and status
func (h *AttendanceHandler) ListAttendance(c echo.Context) error {
	filter := ports.AttendanceFilter{
		Month:  c.QueryParam("month"),
		Status: c.QueryParam("status"),
	}
	return c.JSON(http.StatusOK, h.attendanceService.List(filter))
}

// ListMonths returns the distinct months with records, newest first
func (h *AttendanceHandler) ListMonths(c echo.Context) error {
	return c.JSON(http.StatusOK, h.attendanceService.Months())
}

// GetSummary returns the aggregated time for the filtered records
func (h *AttendanceHandler) GetSummary(c echo.Context) error {
	filter := ports.AttendanceFilter{
		Month:  c.QueryParam("month"),
		Status: c.QueryParam("status"),
	}
	return c.JSON(http.StatusOK, h.attendanceService.Summary(filter))
}

// DeleteAttendance removes the record for one date
func (h *AttendanceHandler) DeleteAttendance(c echo.Context) error {
	if err := h.attendanceService.Delete(c.Request().Context(), c.Param("date")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "No attendance record for this date")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Attendance record deleted"})
}

// StepsHandler handles step tracker requests
type StepsHandler struct {
	stepsService *services.StepsService
	logger       *logger.Logger
}

// NewStepsHandler creates a new steps handler
func NewStepsHandler(stepsService *services.StepsService, logger *logger.Logger) *StepsHandler {
	return &StepsHandler{
		stepsService: stepsService,
		logger:       logger,
	}
}

// AddSteps records one day's step count
func (h *StepsHandler) AddSteps(c echo.Context) error {
	var req ports.AddStepsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.stepsService.Add(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrAlreadyMarked):
			return echo.NewHTTPError(http.StatusConflict, "Steps already recorded for this date")
		case errors.Is(err, entities.ErrFutureDate):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot record steps for a future date")
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, record)
}

// ListSteps returns all step records, newest first
func (h *StepsHandler) ListSteps(c echo.Context) error {
	return c.JSON(http.StatusOK, h.stepsService.List())
}

// GetTrend returns bucketed step totals for week, month, or year
func (h *StepsHandler) GetTrend(c echo.Context) error {
	period := ports.TrendPeriod(c.QueryParam("period"))
	if period == "" {
		period = ports.TrendWeek
	}

	trend, err := h.stepsService.Trend(period)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid period parameter")
	}
	return c.JSON(http.StatusOK, trend)
}

// DeleteSteps removes the record for one date
func (h *StepsHandler) DeleteSteps(c echo.Context) error {
	if err := h.stepsService.Delete(c.Request().Context(), c.Param("date")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "No step record for this date")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Step record deleted"})
}
