package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// MultiGetter is the part of redis.UniversalClient the capacity hook needs.
type MultiGetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

// Capacity is an engine hook that compares a requested amount with the
// remaining capacity kept in two integer counters:
//
//	<prefix>:<key>:limit
//	<prefix>:<key>:used
//
// A missing limit means the key is not capacity bound.
type Capacity struct {
	client  MultiGetter
	prefix  string
	keyPath string
}

type CapacityOption func(*Capacity)

// KeyFrom takes the counter key from the input value at path. The checked
// value is then the requested amount. Without it the checked value is the
// key and the amount is one, as when assigning a child to a class.
func KeyFrom(path string) CapacityOption {
	return func(c *Capacity) {
		c.keyPath = path
	}
}

func NewCapacity(client MultiGetter, prefix string, opts ...CapacityOption) *Capacity {
	c := &Capacity{client: client, prefix: prefix}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LimitKey returns the counter holding the capacity of key.
func (c *Capacity) LimitKey(key string) string { return c.prefix + ":" + key + ":limit" }

// UsedKey returns the counter holding the consumed capacity of key.
func (c *Capacity) UsedKey(key string) string { return c.prefix + ":" + key + ":used" }

func (c *Capacity) Check(ctx context.Context, value any, vc *engine.Context) (*validator.ValidationError, error) {
	key, amount, ok := c.resolve(value, vc)
	if !ok {
		return nil, nil
	}

	vals, err := c.client.MGet(ctx, c.LimitKey(key), c.UsedKey(key)).Result()
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	if len(vals) != 2 || vals[0] == nil {
		return nil, nil
	}
	limit, err := counter(vals[0])
	if err != nil {
		return nil, err
	}
	used, err := counter(vals[1])
	if err != nil {
		return nil, err
	}

	available := max(limit-used, 0)
	if amount <= available {
		return nil, nil
	}
	ve := validator.NewError(nil, validator.CodeCapacity,
		fmt.Sprintf("exceeds the remaining capacity of %d", available),
		map[string]any{"available": available, "requested": amount},
	)
	return &ve, nil
}

func (c *Capacity) resolve(value any, vc *engine.Context) (string, int64, bool) {
	if c.keyPath == "" {
		key, ok := value.(string)
		return key, 1, ok && key != ""
	}
	raw, ok := vc.Get(c.keyPath)
	if !ok {
		return "", 0, false
	}
	key := fmt.Sprint(raw)
	switch n := value.(type) {
	case float64:
		return key, int64(n), true
	case int:
		return key, int64(n), true
	case int64:
		return key, n, true
	}
	return key, 1, true
}

func counter(v any) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, errors.Join(ErrInvalidCounter, fmt.Errorf("%T", v))
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Join(ErrInvalidCounter, err)
	}
	return n, nil
}
