package events

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/adcp-dispatch-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, channel, string(data)).Err(); err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"channel":    channel,
			"event_type": event.Type,
		}).Warn("Falha ao publicar evento no Redis")
		return err
	}

	return nil
}
