package notify

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DefaultTTL is how long a notification stays active when no TTL is configured.
const DefaultTTL = 5 * time.Second

// Notification is a transient user-facing message.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Input describes a notification to emit.
type Input struct {
	Title       string
	Description string
	Severity    Severity
}

// Publisher forwards emitted notifications to the event bus.
type Publisher interface {
	PublishNotificationEmitted(ctx context.Context, id, title, description, severity string) error
}

// Center holds the active notifications for the service. Emission never
// fails: invalid input is dropped with a log line and publish errors are
// logged, so callers on a success path are never interrupted.
type Center struct {
	mu        sync.Mutex
	active    []Notification
	ttl       time.Duration
	logger    *slog.Logger
	publisher Publisher
	now       func() time.Time
}

// NewCenter creates a notification center. A non-positive ttl falls back
// to DefaultTTL. publisher may be nil when no event bus is configured.
func NewCenter(ttl time.Duration, publisher Publisher, logger *slog.Logger) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:       ttl,
		logger:    logger,
		publisher: publisher,
		now:       time.Now,
	}
}

// Emit records a notification and publishes it to the event bus. A blank
// title drops the notification. Unknown severities degrade to info.
func (c *Center) Emit(ctx context.Context, input Input) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.logger.WarnContext(ctx, "dropping notification with empty title",
			slog.String("severity", string(input.Severity)),
		)
		return
	}

	severity := input.Severity
	switch severity {
	case SeveritySuccess, SeverityError, SeverityInfo, SeverityWarning:
	default:
		severity = SeverityInfo
	}

	created := c.now()
	notification := Notification{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Severity:    severity,
		CreatedAt:   created,
		ExpiresAt:   created.Add(c.ttl),
	}

	c.mu.Lock()
	c.prune(created)
	c.active = append(c.active, notification)
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "notification emitted",
		slog.String("notification_id", notification.ID),
		slog.String("title", notification.Title),
		slog.String("severity", string(notification.Severity)),
	)

	if c.publisher == nil {
		return
	}
	if err := c.publisher.PublishNotificationEmitted(ctx, notification.ID, notification.Title, notification.Description, string(notification.Severity)); err != nil {
		c.logger.ErrorContext(ctx, "failed to publish notification event",
			slog.String("notification_id", notification.ID),
			slog.String("error", err.Error()),
		)
	}
}

// Success emits a success notification.
func (c *Center) Success(ctx context.Context, title, description string) {
	c.Emit(ctx, Input{Title: title, Description: description, Severity: SeveritySuccess})
}

// Error emits an error notification.
func (c *Center) Error(ctx context.Context, title, description string) {
	c.Emit(ctx, Input{Title: title, Description: description, Severity: SeverityError})
}

// Info emits an info notification.
func (c *Center) Info(ctx context.Context, title, description string) {
	c.Emit(ctx, Input{Title: title, Description: description, Severity: SeverityInfo})
}

// Warning emits a warning notification.
func (c *Center) Warning(ctx context.Context, title, description string) {
	c.Emit(ctx, Input{Title: title, Description: description, Severity: SeverityWarning})
}

// Active returns the notifications that have not yet expired, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune(c.now())

	out := make([]Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Dismiss removes a notification before its TTL elapses. Dismissing an
// unknown or already expired ID is a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// prune drops expired notifications. Callers must hold c.mu.
func (c *Center) prune(now time.Time) {
	kept := c.active[:0]
	for _, n := range c.active {
		if n.ExpiresAt.After(now) {
			kept = append(kept, n)
		}
	}
	c.active = kept
}
