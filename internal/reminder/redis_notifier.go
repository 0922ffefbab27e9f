package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/term-tracker/internal/models"
)

// RedisNotifier hands reminders to a delivery agent through Redis.
//
// Payloads live in the hash <prefix>:payloads keyed by reminder id; the sorted set
// <prefix>:due orders the same ids by fire time (unix seconds).
type RedisNotifier struct {
	client redis.Cmdable
	prefix string
}

// NewRedisNotifier constructs a notifier writing under prefix.
func NewRedisNotifier(client redis.Cmdable, prefix string) *RedisNotifier {
	if prefix == "" {
		prefix = "termtracker:reminders"
	}
	return &RedisNotifier{client: client, prefix: prefix}
}

func (n *RedisNotifier) payloadKey() string { return n.prefix + ":payloads" }
func (n *RedisNotifier) dueKey() string     { return n.prefix + ":due" }

// Show stores the reminder, replacing any earlier request with the same id.
func (n *RedisNotifier) Show(ctx context.Context, r models.Reminder) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reminder %d: %w", r.ID, err)
	}
	member := strconv.FormatInt(r.ID, 10)
	_, err = n.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, n.payloadKey(), member, payload)
		pipe.ZAdd(ctx, n.dueKey(), redis.Z{Score: float64(r.FireAt.Unix()), Member: member})
		return nil
	})
	if err != nil {
		return fmt.Errorf("store reminder %d: %w", r.ID, err)
	}
	return nil
}

// Cancel drops the listed reminder ids. Unknown ids are ignored.
func (n *RedisNotifier) Cancel(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	fields := make([]string, len(ids))
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		fields[i] = strconv.FormatInt(id, 10)
		members[i] = fields[i]
	}
	_, err := n.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, n.payloadKey(), fields...)
		pipe.ZRem(ctx, n.dueKey(), members...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cancel reminders: %w", err)
	}
	return nil
}

// Pending lists reminders firing at or before until, earliest first.
func (n *RedisNotifier) Pending(ctx context.Context, until time.Time) ([]models.Reminder, error) {
	members, err := n.client.ZRangeByScore(ctx, n.dueKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(until.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	if len(members) == 0 {
		return []models.Reminder{}, nil
	}

	payloads, err := n.client.HMGet(ctx, n.payloadKey(), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("load reminder payloads: %w", err)
	}

	reminders := make([]models.Reminder, 0, len(payloads))
	for i, raw := range payloads {
		str, ok := raw.(string)
		if !ok {
			// due entry without payload; cancelled concurrently
			continue
		}
		var r models.Reminder
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, fmt.Errorf("decode reminder %s: %w", members[i], err)
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}
