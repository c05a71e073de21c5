package redis

import (
	"github.com/redis/go-redis/v9"
)

// keyspace is the prefix shared by every key this service writes
const keyspace = "briefvault:"

const (
	lockPrefix           = keyspace + "lock:"
	sessionPrefix        = keyspace + "session:"
	sessionTokenPrefix   = keyspace + "session:token:"
	sessionRefreshPrefix = keyspace + "session:refresh:"
	sessionUserPrefix    = keyspace + "session:user:"
	resetPrefix          = keyspace + "reset:"
)

// NewClient parses a redis:// URL and opens a client
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
