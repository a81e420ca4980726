package pg

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

var identRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

// Querier is the part of *pgxpool.Pool the lookups need.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type column struct {
	name string
	path string
}

// Unique is an engine hook that reports validator.CodeUnique when another
// row already holds the checked value.
type Unique struct {
	db      Querier
	table   string
	column  string
	scopes  []column
	exclude *column
}

// UniqueOption configures a Unique hook.
type UniqueOption func(*Unique)

// ScopedBy restricts the lookup to rows whose col equals the input value at
// path, such as uniqueness per kindergarten. An absent value drops the filter.
func ScopedBy(col, path string) UniqueOption {
	return func(u *Unique) {
		u.scopes = append(u.scopes, column{name: col, path: path})
	}
}

// ExcludeSelf skips the row being updated: the one whose col equals the
// input value at path, or the prior value when the input omits it.
func ExcludeSelf(col, path string) UniqueOption {
	return func(u *Unique) {
		u.exclude = &column{name: col, path: path}
	}
}

// NewUnique builds a uniqueness hook over table.column. Names are lower
// snake case and may be schema-qualified.
func NewUnique(db Querier, table, col string, opts ...UniqueOption) (*Unique, error) {
	u := &Unique{db: db, table: table, column: col}
	for _, opt := range opts {
		opt(u)
	}

	names := []string{table, col}
	for _, s := range u.scopes {
		names = append(names, s.name)
	}
	if u.exclude != nil {
		names = append(names, u.exclude.name)
	}
	for _, n := range names {
		if !identRegex.MatchString(n) {
			return nil, errors.Join(ErrInvalidIdentifier, fmt.Errorf("%q", n))
		}
	}
	return u, nil
}

func (u *Unique) Check(ctx context.Context, value any, vc *engine.Context) (*validator.ValidationError, error) {
	sql, args := u.query(value, vc)

	var exists bool
	if err := u.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	if !exists {
		return nil, nil
	}

	ve := validator.NewError(nil, validator.CodeUnique, "is already taken", map[string]any{"value": value})
	return &ve, nil
}

func (u *Unique) query(value any, vc *engine.Context) (string, []any) {
	args := []any{value}
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1", ident(u.table), ident(u.column))

	for _, s := range u.scopes {
		if v, ok := vc.Get(s.path); ok {
			args = append(args, v)
			fmt.Fprintf(&b, " AND %s = $%d", ident(s.name), len(args))
		}
	}
	if u.exclude != nil {
		v, ok := vc.Get(u.exclude.path)
		if !ok {
			v, ok = vc.PriorValue(u.exclude.path)
		}
		if ok {
			args = append(args, v)
			fmt.Fprintf(&b, " AND %s <> $%d", ident(u.exclude.name), len(args))
		}
	}

	b.WriteString(")")
	return b.String(), args
}

func ident(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
