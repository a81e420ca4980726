// Package redis connects to Redis through go-redis/v9 and provides the
// capacity hook the validation engine uses for quota and class limits.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	quota := redis.NewCapacity(client, cfg.KeyPrefix+":kindergarten", redis.KeyFrom("kindergartenId"))
//	eng, err := engine.New(reg, engine.WithHook(schemas.HookQuotaCapacity, quota))
//
// Capacity reads the limit and used counters of a key with one MGET. The
// counters are maintained by whatever service owns the records; this package
// only reads them. A request larger than limit minus used is reported as
// validator.CodeCapacity with the remaining amount in the "available"
// parameter.
//
// Lookup errors are joined with ErrLookupFailed and counters that are not
// integers with ErrInvalidCounter. The engine treats both as an
// inconclusive check.
package redis
