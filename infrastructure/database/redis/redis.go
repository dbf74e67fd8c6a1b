package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/adcp-dispatch-api/internal/config"
)

// NewClient abre a conexão com o Redis a partir da URL configurada e
// valida a conectividade com um ping antes de devolver o cliente.
func NewClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
