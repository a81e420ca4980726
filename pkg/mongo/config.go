package mongo

import "time"

// Config holds the connection settings, read from KG_MONGODB_* variables.
type Config struct {
	ConnectionURL   string        `env:"KG_MONGODB_URL,required"`                         // ConnectionURL is the URL of the deployment.
	Database        string        `env:"KG_MONGODB_DATABASE" envDefault:"kinderkit"`      // Database holds the reference collections.
	ConnectTimeout  time.Duration `env:"KG_MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout bounds each connection attempt.
	MaxPoolSize     uint64        `env:"KG_MONGODB_MAX_POOL_SIZE" envDefault:"50"`        // MaxPoolSize is the maximum number of pooled connections.
	MinPoolSize     uint64        `env:"KG_MONGODB_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize is the number of connections kept open.
	MaxConnIdleTime time.Duration `env:"KG_MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is how long an idle connection is kept.
	RetryReads      bool          `env:"KG_MONGODB_RETRY_READS" envDefault:"true"`        // RetryReads enables driver-level read retries.
	RetryAttempts   int           `env:"KG_MONGODB_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of connection attempts.
	RetryInterval   time.Duration `env:"KG_MONGODB_RETRY_INTERVAL" envDefault:"2s"`       // RetryInterval is the delay between attempts.
}
