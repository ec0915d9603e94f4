package messaging

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"input-selector/internal/logger"
	"input-selector/internal/types"
)

// Keys written by the status mirror.
const (
	StatusHash = "selector"
	UptimeHash = "selector:uptime"
	Channel    = "selector"
)

// RedisClient mirrors the selector status into a local redis. Publishing
// never blocks the caller: updates are handed to a worker goroutine and
// dropped when it falls behind.
type RedisClient struct {
	client *redis.Client
	logger *logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	status chan types.Status
	uptime chan []types.Uptime
}

func NewRedisClient(addr string, l *logger.Logger) *RedisClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisClient{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   0,
		}),
		logger: l,
		ctx:    ctx,
		cancel: cancel,
		status: make(chan types.Status, 1),
		uptime: make(chan []types.Uptime, 1),
	}
}

func (r *RedisClient) Connect() error {
	r.logger.Infof("Attempting to connect to Redis at %s", r.client.Options().Addr)
	if err := r.client.Ping(r.ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection failed: %w", err)
	}
	r.logger.Infof("Successfully connected to Redis")
	return nil
}

// Start runs the publishing worker until Close.
func (r *RedisClient) Start() {
	r.wg.Add(1)
	go r.worker()
}

// PublishStatus queues a status update. When an update is already pending
// it is replaced by the newer one.
func (r *RedisClient) PublishStatus(s types.Status) {
	for {
		select {
		case r.status <- s:
			return
		default:
		}
		select {
		case <-r.status:
		default:
		}
	}
}

// PublishUptime queues the uptime table, replacing a pending one.
func (r *RedisClient) PublishUptime(u []types.Uptime) {
	u = append([]types.Uptime(nil), u...)
	for {
		select {
		case r.uptime <- u:
			return
		default:
		}
		select {
		case <-r.uptime:
		default:
		}
	}
}

func (r *RedisClient) worker() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ctx.Done():
			return
		case s := <-r.status:
			if err := r.publishHash(StatusHash, statusFields(s), "status"); err != nil {
				r.logger.Warnf("Failed to publish status: %v", err)
			}
		case u := <-r.uptime:
			if err := r.publishHash(UptimeHash, uptimeFields(u), "uptime"); err != nil {
				r.logger.Warnf("Failed to publish uptime: %v", err)
			}
		}
	}
}

// publishHash atomically updates hash fields and publishes a notification.
func (r *RedisClient) publishHash(hash string, fields map[string]interface{}, payload string) error {
	pipe := r.client.Pipeline()
	pipe.HSet(r.ctx, hash, fields)
	pipe.Publish(r.ctx, Channel, payload)
	_, err := pipe.Exec(r.ctx)
	return err
}

func statusFields(s types.Status) map[string]interface{} {
	return map[string]interface{}{
		"state":    s.State.String(),
		"input":    s.Input,
		"address":  fmt.Sprintf("0x%02x", s.Address),
		"position": strconv.Itoa(s.Position),
	}
}

func uptimeFields(u []types.Uptime) map[string]interface{} {
	fields := make(map[string]interface{}, len(u))
	for _, e := range u {
		fields[e.Label] = strconv.FormatUint(uint64(e.Seconds), 10)
	}
	return fields
}

func (r *RedisClient) Close() error {
	r.logger.Infof("Closing Redis client")
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		r.logger.Warnf("Timeout waiting for Redis worker to finish")
	}
	return r.client.Close()
}
