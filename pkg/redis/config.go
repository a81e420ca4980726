package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"KG_REDIS_URL" envDefault:"redis://localhost:6379/0"` // ConnectionURL in the form "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"KG_REDIS_RETRY_ATTEMPTS" envDefault:"3"`             // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"KG_REDIS_RETRY_INTERVAL" envDefault:"2s"`            // RetryInterval is the delay between attempts.
	ConnectTimeout time.Duration `env:"KG_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`          // ConnectTimeout bounds the whole connection phase.
	KeyPrefix      string        `env:"KG_REDIS_KEY_PREFIX" envDefault:"kinderkit"`         // KeyPrefix namespaces every capacity counter.
}
