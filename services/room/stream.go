package room

import (
	"context"
	"encoding/json"
	"sync"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisMessageBus fans room messages out over Redis Pub/Sub so that every
// API instance delivers live messages regardless of which instance
// accepted the write.
type RedisMessageBus struct {
	client *redis.Client
}

func NewRedisMessageBus() *RedisMessageBus {
	return &RedisMessageBus{client: utils.GetPubSubClient()}
}

func roomChannel(roomID string) string {
	return utils.RoomChannelPrefix + roomID
}

func (b *RedisMessageBus) Publish(ctx context.Context, roomID string, msg models.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, roomChannel(roomID), payload).Err()
}

// Subscribe opens a live tail on the room channel. The returned stop
// function closes the subscription and drains the channel; it is safe to
// call more than once.
func (b *RedisMessageBus) Subscribe(ctx context.Context, roomID string) (<-chan models.Message, func(), error) {
	sub := b.client.Subscribe(ctx, roomChannel(roomID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan models.Message, 16)
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			if err := sub.Close(); err != nil {
				utils.GetLogger().Warn("failed to close room subscription",
					zap.String("roomId", roomID), zap.Error(err))
			}
		})
	}

	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case <-done:
				return
			case raw, ok := <-ch:
				if !ok {
					return
				}
				var msg models.Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					utils.GetLogger().Warn("dropping malformed room message",
						zap.String("roomId", roomID), zap.Error(err))
					continue
				}
				select {
				case out <- msg:
				case <-done:
					return
				case <-ctx.Done():
					stop()
					return
				}
			}
		}
	}()

	return out, stop, nil
}
