package ports

import (
	"github.com/shopspring/decimal"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
)

// Request types for the event lifecycle. Dates travel as yyyy-mm-dd strings
// and times as HH:MM strings; both are validated at the HTTP boundary and
// converted before they reach the services.

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Location    string `json:"location"`
	Category    string `json:"category" validate:"required"`
	Priority    string `json:"priority" validate:"required"`
	Notes       string `json:"notes"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Notes       *string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type RescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// EventStats is the derived summary recomputed from the live collection.
type EventStats struct {
	Today      int                              `json:"today"`
	ThisWeek   int                              `json:"thisWeek"`
	ByStatus   map[entities.EventStatus]int     `json:"byStatus"`
	ByCategory map[entities.EventCategory]int   `json:"byCategory"`
}

// DaySchedule is one calendar day's bucket of events.
type DaySchedule struct {
	Date   string           `json:"date"`
	Events []entities.Event `json:"events"`
}

// WeekView is a seven-day window of day buckets.
type WeekView struct {
	Start string        `json:"start"`
	End   string        `json:"end"`
	Days  []DaySchedule `json:"days"`
}

// Attendance tracker contracts.

type MarkAttendanceRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Status   string `json:"status" validate:"required"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Notes    string `json:"notes"`
}

type AttendanceFilter struct {
	Month  string // yyyy-mm, empty matches all
	Status string // Present/Absent, empty matches all
}

type AttendanceSummary struct {
	Records      int    `json:"records"`
	TotalMinutes int    `json:"totalMinutes"`
	TotalTime    string `json:"totalTime"`
}

// Step tracker contracts.

type AddStepsRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Steps int    `json:"steps" validate:"min=0"`
}

type TrendPeriod string

const (
	TrendWeek  TrendPeriod = "week"
	TrendMonth TrendPeriod = "month"
	TrendYear  TrendPeriod = "year"
)

type TrendBucket struct {
	Label string `json:"label"`
	Steps int    `json:"steps"`
}

type StepsTrend struct {
	Period     TrendPeriod   `json:"period"`
	Buckets    []TrendBucket `json:"buckets"`
	Cumulative int           `json:"cumulative"`
}

// CSR record contracts.

type CSRRecordRequest struct {
	FinancialYear    string `json:"financialYear" validate:"required"`
	NGOName          string `json:"ngoName" validate:"required"`
	Phase            string `json:"phase"`
	Project          string `json:"project"`
	Location         string `json:"location"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	InaugurationDate string `json:"inaugurationDate"`
	Participants     int    `json:"participants" validate:"min=0"`
	TotalCost        string `json:"totalCost"`
	GoogleLocation   string `json:"googleLocation"`
	Status           string `json:"status"`
}

type CSRFilter struct {
	FinancialYear string // empty matches all
	NGOName       string // empty matches all
}

type CSRSummary struct {
	Records      int             `json:"records"`
	Participants int             `json:"participants"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// Reminder contracts.

type CreateReminderRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message"`
	DueAt   string `json:"dueAt" validate:"required"` // RFC3339
}

type SnoozeReminderRequest struct {
	Minutes int `json:"minutes" validate:"required,min=1"`
}
