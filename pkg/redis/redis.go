package redis

import (
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/tsel-ticketmaster/tm-ticket/config"
)

var (
	once   sync.Once
	client *redis.Client
)

func GetClient() *redis.Client {
	once.Do(func() {
		c := config.Get()

		client = redis.NewClient(&redis.Options{
			Addr:     c.Redis.Address,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	})

	return client
}
