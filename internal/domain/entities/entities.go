package entities

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrRecordNotFound   = errors.New("record not found")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrAlreadyMarked    = errors.New("record already exists for this date")
	ErrFutureDate       = errors.New("date cannot be in the future")
	ErrNegativeSteps    = errors.New("steps cannot be negative")
)

// Enums and types
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
	// EventStatusRescheduled is part of the stored enumeration but the
	// reschedule operation itself lands events back in "scheduled". It is
	// kept as a valid, explicitly settable status.
	EventStatusRescheduled EventStatus = "rescheduled"
)

type EventCategory string

const (
	CategoryWork        EventCategory = "work"
	CategoryPersonal    EventCategory = "personal"
	CategoryHealth      EventCategory = "health"
	CategoryMeeting     EventCategory = "meeting"
	CategoryAppointment EventCategory = "appointment"
	CategorySocial      EventCategory = "social"
	CategoryOther       EventCategory = "other"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Event is a user-created calendar entry. Date carries the calendar day
// only (normalized to midnight UTC); the time range lives in StartTime and
// EndTime as zero-padded HH:MM values.
type Event struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Date            time.Time     `json:"date"`
	StartTime       TimeOfDay     `json:"startTime"`
	EndTime         TimeOfDay     `json:"endTime"`
	Location        string        `json:"location"`
	Category        EventCategory `json:"category"`
	Priority        Priority      `json:"priority"`
	Notes           string        `json:"notes"`
	Status          EventStatus   `json:"status"`
	OriginalEventID string        `json:"originalEventId,omitempty"`
}

// OccursOn reports whether the event falls on the same calendar day as t,
// ignoring time-of-day.
func (e *Event) OccursOn(t time.Time) bool {
	ey, em, ed := e.Date.UTC().Date()
	ty, tm, td := t.UTC().Date()
	return ey == ty && em == tm && ed == td
}

// AttendanceRecord tracks one day of attendance. Date is a yyyy-mm-dd
// string; exactly one record may exist per date. TotalTime is stored in the
// "XhYm" form the tracker displays.
type AttendanceRecord struct {
	Date      string           `json:"date"`
	CheckIn   TimeOfDay        `json:"checkIn"`
	CheckOut  TimeOfDay        `json:"checkOut"`
	TotalTime string           `json:"totalTime"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes"`
}

// MonthKey returns the yyyy-mm bucket the record belongs to.
func (r *AttendanceRecord) MonthKey() string {
	if len(r.Date) < 7 {
		return r.Date
	}
	return r.Date[:7]
}

// StepRecord tracks the step count for one day. One record per date.
type StepRecord struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// CSR record option lists. The first entry of each list doubles as the
// default used when migrating older stored records.
var (
	FinancialYears = []string{"21-22", "22-23", "23-24", "24-25", "25-26"}
	NGONames       = []string{"IndiaSudar", "OSSAT", "Diyaghar", "Sapno ke"}
	Phases         = []string{"Phase 1", "Phase 2", "Phase 3"}
	CSRProjects    = []string{"Infrastructure", "Painting", "Toilet construction", "Notebook distribution"}
	CSRStatuses    = []string{"Not started", "In Progress", "Completed"}
)

// CSRRecord is a corporate-social-responsibility project record.
type CSRRecord struct {
	ID               string          `json:"id"`
	FinancialYear    string          `json:"financialYear"`
	NGOName          string          `json:"ngoName"`
	Phase            string          `json:"phase"`
	Project          string          `json:"project"`
	Location         string          `json:"location"`
	StartDate        string          `json:"startDate"`
	EndDate          string          `json:"endDate"`
	InaugurationDate string          `json:"inaugurationDate"`
	Participants     int             `json:"participants"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	GoogleLocation   string          `json:"googleLocation"`
	Status           string          `json:"status"`
}

// Profile holds the single user's profile document.
type Profile struct {
	ProfilePic string `json:"profilePic"`
	LinkedIn   string `json:"linkedin"`
	Instagram  string `json:"instagram"`
	Facebook   string `json:"facebook"`
}

// Reminder is a one-shot alert. Alerted marks that it has already fired;
// snoozing moves DueAt forward and clears the marker so it fires again.
type Reminder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	DueAt     time.Time `json:"dueAt"`
	Alerted   bool      `json:"alerted"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsDue reports whether the reminder should fire at time now.
func (r *Reminder) IsDue(now time.Time) bool {
	return !r.Alerted && !r.DueAt.After(now)
}

// SlackMessage is the outbound webhook payload.
type SlackMessage struct {
	Text     string `json:"text"`
	Channel  string `json:"channel,omitempty"`
	Username string `json:"username,omitempty"`
}

// MinutesBetween returns the whole minutes between check-in and check-out.
// A negative span wraps by 24h to cover overnight shifts.
func MinutesBetween(in, out TimeOfDay) int {
	diff := out.Minutes() - in.Minutes()
	if diff < 0 {
		diff += 24 * 60
	}
	return diff
}

var hoursMinutesRe = regexp.MustCompile(`(\d+)h\s*(\d+)m`)

// FormatMinutes renders a minute count in the tracker's "XhYm" form.
func FormatMinutes(total int) string {
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// ParseMinutes extracts the minute count from an "XhYm" string. Strings
// that do not match contribute zero.
func ParseMinutes(s string) int {
	m := hoursMinutesRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// Utility methods
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusScheduled, EventStatusCompleted, EventStatusCancelled, EventStatusRescheduled:
		return true
	default:
		return false
	}
}

func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryMeeting, CategoryAppointment, CategorySocial, CategoryOther:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent:
		return true
	default:
		return false
	}
}
