package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	kgmongo "github.com/dmitrymomot/kinderkit/pkg/mongo"
	"github.com/dmitrymomot/kinderkit/pkg/pg"
	"github.com/dmitrymomot/kinderkit/pkg/redis"
)

var errNoStores = errors.New("no stores given, use --stores")

var pingFlags struct {
	timeout time.Duration
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the stores given with --stores",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)

	pingCmd.Flags().DurationVar(&pingFlags.timeout, "timeout", 5*time.Second, "timeout of each check")
}

func runPing(cmd *cobra.Command, _ []string) error {
	if len(stores) == 0 {
		return errNoStores
	}

	b, err := connectStores(cmd.Context(), stores)
	if err != nil {
		return err
	}
	defer b.close()

	type check struct {
		name  string
		probe func(context.Context) error
	}
	var checks []check
	if b.pool != nil {
		checks = append(checks, check{storePostgres, pg.Healthcheck(b.pool)})
	}
	if b.redis != nil {
		checks = append(checks, check{storeRedis, redis.Healthcheck(b.redis)})
	}
	if b.mongo != nil {
		checks = append(checks, check{storeMongo, kgmongo.Healthcheck(b.mongo.Client())})
	}

	failed := false
	for _, c := range checks {
		ctx, cancel := context.WithTimeout(cmd.Context(), pingFlags.timeout)
		err := c.probe(ctx)
		cancel()
		if err != nil {
			failed = true
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", c.name)
	}
	if failed {
		return &exitError{code: exitFailure}
	}
	return nil
}
