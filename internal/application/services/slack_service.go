package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/calendar"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/config"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
)

// SlackNotifier posts messages to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	channel    string
	username   string
	client     *http.Client
	logger     *logger.Logger
}

// NewSlackNotifier builds a notifier from the Slack configuration.
// Returns nil when no webhook URL is configured.
func NewSlackNotifier(cfg config.SlackConfig, log *logger.Logger) *SlackNotifier {
	if !cfg.IsConfigured() {
		return nil
	}
	return &SlackNotifier{
		webhookURL: cfg.WebhookURL,
		channel:    cfg.Channel,
		username:   cfg.Username,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     log.WithComponent("slack_notifier"),
	}
}

// Notify posts the message to the webhook.
func (n *SlackNotifier) Notify(ctx context.Context, msg entities.SlackMessage) error {
	if msg.Channel == "" {
		msg.Channel = n.channel
	}
	if msg.Username == "" {
		msg.Username = n.username
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debugw("Slack message delivered", "channel", msg.Channel)
	return nil
}

// FormatDaySummary renders the events of one day as a Slack-friendly text
// block, used by the schedule share operation.
func FormatDaySummary(date time.Time, events []entities.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Schedule for %s*\n", date.Format("Monday, Jan 2 2006"))

	if len(events) == 0 {
		b.WriteString("No events scheduled.")
		return b.String()
	}

	for _, e := range events {
		line := "• " + e.Title
		if !e.StartTime.IsZero() {
			span := e.StartTime.String()
			if !e.EndTime.IsZero() {
				span += "-" + e.EndTime.String()
			}
			line = "• " + span + " " + e.Title
		}
		if e.Location != "" {
			line += " @ " + e.Location
		}
		if e.Status != entities.EventStatusScheduled {
			line += fmt.Sprintf(" [%s]", e.Status)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ShareDay sends the given day's schedule through the notifier.
func ShareDay(ctx context.Context, notifier *SlackNotifier, events *EventService, date time.Time) error {
	if notifier == nil {
		return fmt.Errorf("slack is not configured")
	}
	day := events.EventsOn(date)
	msg := entities.SlackMessage{Text: FormatDaySummary(calendar.Day(date), day)}
	return notifier.Notify(ctx, msg)
}
