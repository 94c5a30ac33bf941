// Package publisher fans accepted snapshots out to Redis pub/sub subscribers.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/housefest/board-service/internal/config"
	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/metrics"
)

const (
	// EventSnapshotAccepted names the only notification published today.
	EventSnapshotAccepted = "snapshot.accepted"

	publishTimeout = 2 * time.Second
)

// Notification is the JSON payload published per accepted snapshot.
type Notification struct {
	Event       string                 `json:"event"`
	FetchedAt   time.Time              `json:"fetchedAt"`
	LastUpdated string                 `json:"lastUpdated"`
	Counts      metrics.SnapshotCounts `json:"counts"`
}

type publishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisPublisher publishes snapshot notifications on one channel.
type RedisPublisher struct {
	client  publishClient
	channel string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewRedisPublisher parses cfg.URL and builds a client. It does not dial; use Ping to
// check connectivity.
func NewRedisPublisher(cfg config.RedisConfig, logger *slog.Logger, recorder *metrics.Recorder) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}
	return newRedisPublisher(redis.NewClient(opt), cfg.Channel, logger, recorder), nil
}

func newRedisPublisher(client publishClient, channel string, logger *slog.Logger, recorder *metrics.Recorder) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
		metrics: recorder,
	}
}

// Notify publishes a snapshot.accepted notification. Errors are counted and returned;
// callers only log them.
func (p *RedisPublisher) Notify(ctx context.Context, snap board.Snapshot, label string) error {
	payload, err := sonic.Marshal(NewNotification(snap, label))
	if err != nil {
		p.metrics.RecordNotification(err)
		return crerr.Wrap(err, "encode notification")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	receivers, err := p.client.Publish(ctx, p.channel, string(payload)).Result()
	p.metrics.RecordNotification(err)
	if err != nil {
		return crerr.Wrapf(err, "publish to %s", p.channel)
	}
	logging.Debug(p.logger, "snapshot notification published",
		slog.String("channel", p.channel),
		slog.Int64(logging.FieldClients, receivers),
	)
	return nil
}

// Ping checks the connection.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// NewNotification summarises snap for subscribers.
func NewNotification(snap board.Snapshot, label string) Notification {
	return Notification{
		Event:       EventSnapshotAccepted,
		FetchedAt:   snap.FetchedAt.UTC(),
		LastUpdated: label,
		Counts:      metrics.CountSnapshot(snap),
	}
}
