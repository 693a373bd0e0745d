package service

import (
	"context"
	"encoding/json"
	"time"

	"blog-server/internal/cache"
	"blog-server/internal/metrics"
	"blog-server/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType enumerates moderation events.
type EventType string

const (
	EventBlogSubmitted EventType = "blog.submitted"
	EventBlogApproved  EventType = "blog.approved"
	EventBlogDeleted   EventType = "blog.deleted"
)

const publishTimeout = 3 * time.Second

var jsonMarshal = json.Marshal

// ModerationEvent is emitted after a moderation state change has been persisted.
type ModerationEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	BlogID    string    `json:"blog_id"`
	Timestamp time.Time `json:"timestamp"`
}

func newEvent(t EventType, blogID string) ModerationEvent {
	return ModerationEvent{
		ID:        uuid.NewString(),
		Type:      t,
		BlogID:    blogID,
		Timestamp: timeNow().UTC(),
	}
}

// Notifier receives moderation events. Implementations must not block the caller
// on delivery.
type Notifier interface {
	Notify(ctx context.Context, ev ModerationEvent)
}

// EventPublisher 透過 worker pool 非同步把事件發布到 Redis 頻道
type EventPublisher struct {
	pool    worker.Pool
	cache   cache.Cache
	channel string
	logger  *zap.Logger
}

func NewEventPublisher(pool worker.Pool, c cache.Cache, channel string, logger *zap.Logger) *EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPublisher{pool: pool, cache: c, channel: channel, logger: logger}
}

// Notify 發布失敗只記錄 log，不影響請求結果
func (p *EventPublisher) Notify(_ context.Context, ev ModerationEvent) {
	payload, err := jsonMarshal(ev)
	if err != nil {
		p.logger.Error("marshal moderation event", zap.Error(err), zap.String("type", string(ev.Type)))
		return
	}

	// 佇列滿或 pool 已停止時直接丟棄，不拖住請求
	submitted := p.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.cache.Publish(ctx, p.channel, payload).Err(); err != nil {
			metrics.EventsPublishedTotal.WithLabelValues(string(ev.Type), "error").Inc()
			p.logger.Warn("publish moderation event",
				zap.Error(err),
				zap.String("type", string(ev.Type)),
				zap.String("blog_id", ev.BlogID),
			)
			return
		}
		metrics.EventsPublishedTotal.WithLabelValues(string(ev.Type), "ok").Inc()
	})
	if !submitted {
		metrics.EventsPublishedTotal.WithLabelValues(string(ev.Type), "dropped").Inc()
		p.logger.Warn("worker queue unavailable, event dropped",
			zap.String("type", string(ev.Type)),
			zap.String("blog_id", ev.BlogID),
		)
	}
}
