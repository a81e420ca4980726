package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Counter is the part of *mongo.Collection the reference hook needs.
type Counter interface {
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
}

// Exists is an engine hook that reports validator.CodeNotFound when no
// document of the collection matches the referenced identifier.
type Exists struct {
	coll   Counter
	field  string
	filter bson.D
}

type ExistsOption func(*Exists)

// MatchField looks the identifier up in field instead of _id.
func MatchField(field string) ExistsOption {
	return func(e *Exists) {
		e.field = field
	}
}

// Where adds a fixed condition, such as excluding archived records.
func Where(key string, value any) ExistsOption {
	return func(e *Exists) {
		e.filter = append(e.filter, bson.E{Key: key, Value: value})
	}
}

func NewExists(coll Counter, opts ...ExistsOption) *Exists {
	e := &Exists{coll: coll, field: "_id"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exists) Check(ctx context.Context, value any, _ *engine.Context) (*validator.ValidationError, error) {
	filter := make(bson.D, 0, len(e.filter)+1)
	filter = append(filter, bson.E{Key: e.field, Value: value})
	filter = append(filter, e.filter...)

	n, err := e.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	if n > 0 {
		return nil, nil
	}

	ve := validator.NewError(nil, validator.CodeNotFound,
		fmt.Sprintf("refers to a record that does not exist: %v", value),
		map[string]any{"value": value},
	)
	return &ve, nil
}
