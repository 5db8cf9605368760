package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/config"
)

// NewRedis conecta no Redis usado pelo cache de métricas. Redis
// indisponível não derruba a API: devolve nil e o chamador passa a
// recalcular sempre.
func NewRedis(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Println("redis unavailable, metrics cache disabled:", err)
		return nil
	}
	return rdb
}
