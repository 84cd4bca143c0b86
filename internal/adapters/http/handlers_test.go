package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam1973/MOM-Tracker/internal/application/services"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

type memEventRepo struct {
	events []entities.Event
}

func (m *memEventRepo) Load(ctx context.Context) []entities.Event {
	return append([]entities.Event(nil), m.events...)
}

func (m *memEventRepo) Save(ctx context.Context, events []entities.Event) error {
	m.events = append([]entities.Event(nil), events...)
	return nil
}

func (m *memEventRepo) Clear(ctx context.Context) error {
	m.events = nil
	return nil
}

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func newTestHandler() (*EventHandler, *echo.Echo) {
	log := logger.NewNop()
	clock := ports.SystemClock{}
	ids := func() string { return "fixed-id" }

	eventService := services.NewEventService(&memEventRepo{}, clock, ids, time.Sunday, log)
	statsService := services.NewStatsService(eventService, clock, time.Sunday)
	exportService := services.NewExportService(eventService)
	handler := NewEventHandler(eventService, statsService, exportService, nil, log)

	e := echo.New()
	e.Validator = &structValidator{validate: validator.New()}
	return handler, e
}

func TestCreateEventEndpoint(t *testing.T) {
	handler, e := newTestHandler()

	body := `{"title":"standup","date":"2026-03-11","startTime":"09:00","endTime":"09:15","category":"meeting","priority":"medium"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := handler.CreateEvent(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created entities.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "fixed-id", created.ID)
	assert.Equal(t, entities.EventStatusScheduled, created.Status)
}

func TestCreateEventEndpointRejectsMissingFields(t *testing.T) {
	handler, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := handler.CreateEvent(e.NewContext(req, rec))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetEventEndpointNotFound(t *testing.T) {
	handler, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.GetEvent(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestListEventsEndpointByDate(t *testing.T) {
	handler, e := newTestHandler()

	body := `{"title":"standup","date":"2026-03-11","startTime":"09:00","endTime":"09:15","category":"meeting","priority":"medium"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	require.NoError(t, handler.CreateEvent(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/events?date=2026-03-11", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.ListEvents(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var day ports.DaySchedule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	assert.Equal(t, "2026-03-11", day.Date)
	assert.Len(t, day.Events, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/events?date=not-a-date", nil)
	err := handler.ListEvents(e.NewContext(req, httptest.NewRecorder()))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestExportEndpointSetsContentType(t *testing.T) {
	handler, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/export", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler.ExportICS(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/calendar")
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
}
