package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

var _ pinger = (*mongo.Client)(nil)

// Healthcheck returns a probe that pings the primary.
func Healthcheck(client pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
