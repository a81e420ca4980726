package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/kinderkit"
	"github.com/dmitrymomot/kinderkit/pkg/config"
	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/logger"
	kgmongo "github.com/dmitrymomot/kinderkit/pkg/mongo"
	"github.com/dmitrymomot/kinderkit/pkg/pg"
	"github.com/dmitrymomot/kinderkit/pkg/redis"
)

// Exit statuses.
const (
	exitOK      = 0
	exitInvalid = 1
	exitFailure = 2
)

// Store names accepted by --stores.
const (
	storePostgres = "pg"
	storeRedis    = "redis"
	storeMongo    = "mongo"
)

var (
	// Global flags
	stores  []string
	verbose bool
)

// exitError carries the process status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var rootCmd = &cobra.Command{
	Use:   "kgvalidate",
	Short: "Validate kindergarten records against the domain schemas",
	Long: `kgvalidate runs the kinderkit validation engine from the command line.

Input is a JSON or YAML object. Settings are read from KG_* environment
variables and an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	return exitOK
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&stores, "stores", nil, "backends serving external rules: pg, redis, mongo")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}

// newLogger writes to stderr so stdout carries only the result.
func newLogger(cfg logger.Config) (*slog.Logger, error) {
	if verbose {
		cfg.Level = "debug"
	}
	opts, err := logger.FromConfig(cfg, kinderkit.ServiceName)
	if err != nil {
		return nil, err
	}
	return logger.New(append(opts, logger.WithOutput(os.Stderr))...), nil
}

// newEngine builds the engine and connects the requested stores. The
// returned func releases the store connections.
func newEngine(ctx context.Context) (*engine.Engine, func(), error) {
	cfg, err := kinderkit.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	b, err := connectStores(ctx, stores)
	if err != nil {
		return nil, nil, err
	}

	eng, err := kinderkit.New(ctx,
		kinderkit.WithConfig(cfg),
		kinderkit.WithLogger(log),
		kinderkit.WithStores(b.stores()),
	)
	if err != nil {
		b.close()
		return nil, nil, err
	}
	return eng, b.close, nil
}

// backends holds the open store connections.
type backends struct {
	pool        *pgxpool.Pool
	redis       *goredis.Client
	redisPrefix string
	mongo       *mongo.Database
}

// stores leaves unopened backends nil so their rules are skipped.
func (b *backends) stores() kinderkit.Stores {
	var s kinderkit.Stores
	if b.pool != nil {
		s.Postgres = b.pool
	}
	if b.redis != nil {
		s.Redis = b.redis
		s.RedisPrefix = b.redisPrefix
	}
	s.Mongo = b.mongo
	return s
}

func (b *backends) close() {
	if b.mongo != nil {
		_ = b.mongo.Client().Disconnect(context.Background())
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

// connectStores opens the named backends with their KG_* settings.
func connectStores(ctx context.Context, names []string) (*backends, error) {
	b := &backends{}
	for _, name := range names {
		if err := b.connect(ctx, strings.ToLower(strings.TrimSpace(name))); err != nil {
			b.close()
			return nil, err
		}
	}
	return b, nil
}

func (b *backends) connect(ctx context.Context, name string) error {
	switch name {
	case storePostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		b.pool = pool
	case storeRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		b.redis, b.redisPrefix = client, cfg.KeyPrefix
	case storeMongo:
		var cfg kgmongo.Config
		if err := config.Load(&cfg); err != nil {
			return err
		}
		db, err := kgmongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		b.mongo = db
	default:
		return fmt.Errorf("unknown store %q", name)
	}
	return nil
}
