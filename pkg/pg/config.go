package pg

import "time"

type Config struct {
	ConnectionString  string        `env:"KG_PG_CONN_URL,required"`                   // ConnectionString is the connection string to the database.
	MaxOpenConns      int32         `env:"KG_PG_MAX_OPEN_CONNS" envDefault:"10"`      // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns      int32         `env:"KG_PG_MAX_IDLE_CONNS" envDefault:"2"`       // MaxIdleConns is the number of connections kept open while idle.
	HealthCheckPeriod time.Duration `env:"KG_PG_HEALTHCHECK_PERIOD" envDefault:"1m"`  // HealthCheckPeriod is the period between pool health checks.
	MaxConnIdleTime   time.Duration `env:"KG_PG_MAX_CONN_IDLE_TIME" envDefault:"10m"` // MaxConnIdleTime is how long a connection may stay idle before it is closed.
	MaxConnLifetime   time.Duration `env:"KG_PG_MAX_CONN_LIFETIME" envDefault:"30m"`  // MaxConnLifetime is how long a connection may be reused.

	RetryAttempts int           `env:"KG_PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts.
	RetryInterval time.Duration `env:"KG_PG_RETRY_INTERVAL" envDefault:"2s"` // RetryInterval is the base delay between attempts; attempt n waits n intervals.
}
