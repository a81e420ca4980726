package pg_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/pg"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

type row struct {
	exists bool
	err    error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.exists
	return nil
}

type querier struct {
	row  row
	sql  string
	args []any
}

func (q *querier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	q.args = args
	return q.row
}

func TestUnique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("free value", func(t *testing.T) {
		t.Parallel()
		q := &querier{}
		u, err := pg.NewUnique(q, "kindergartens", "code")
		require.NoError(t, err)

		ve, err := u.Check(ctx, "SUN-001", &engine.Context{})
		require.NoError(t, err)
		assert.Nil(t, ve)
		assert.Equal(t, `SELECT EXISTS (SELECT 1 FROM "kindergartens" WHERE "code" = $1)`, q.sql)
		assert.Equal(t, []any{"SUN-001"}, q.args)
	})

	t.Run("taken value", func(t *testing.T) {
		t.Parallel()
		q := &querier{row: row{exists: true}}
		u, err := pg.NewUnique(q, "kindergartens", "code")
		require.NoError(t, err)

		ve, err := u.Check(ctx, "SUN-001", &engine.Context{})
		require.NoError(t, err)
		require.NotNil(t, ve)
		assert.Equal(t, validator.CodeUnique, ve.Code)
		assert.Empty(t, ve.Path)
		assert.Equal(t, "SUN-001", ve.TranslationValues["value"])
	})

	t.Run("scoped and excluding self", func(t *testing.T) {
		t.Parallel()
		q := &querier{}
		u, err := pg.NewUnique(q, "public.roles", "code",
			pg.ScopedBy("kindergarten_id", "kindergartenId"),
			pg.ExcludeSelf("id", "id"),
		)
		require.NoError(t, err)

		vc := &engine.Context{
			Value: map[string]any{"code": "teacher", "kindergartenId": "k1"},
			Prior: map[string]any{"id": "r1"},
		}
		_, err = u.Check(ctx, "teacher", vc)
		require.NoError(t, err)
		assert.Equal(t,
			`SELECT EXISTS (SELECT 1 FROM "public"."roles" WHERE "code" = $1 AND "kindergarten_id" = $2 AND "id" <> $3)`,
			q.sql)
		assert.Equal(t, []any{"teacher", "k1", "r1"}, q.args)
	})

	t.Run("absent scope drops the filter", func(t *testing.T) {
		t.Parallel()
		q := &querier{}
		u, err := pg.NewUnique(q, "roles", "code", pg.ScopedBy("kindergarten_id", "kindergartenId"))
		require.NoError(t, err)

		_, err = u.Check(ctx, "teacher", &engine.Context{Value: map[string]any{}})
		require.NoError(t, err)
		assert.Equal(t, []any{"teacher"}, q.args)
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		u, err := pg.NewUnique(&querier{row: row{err: boom}}, "parents", "phone")
		require.NoError(t, err)

		_, err = u.Check(ctx, "13800138000", &engine.Context{})
		assert.ErrorIs(t, err, pg.ErrLookupFailed)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("invalid identifiers", func(t *testing.T) {
		t.Parallel()
		_, err := pg.NewUnique(&querier{}, "parents; drop table x", "phone")
		assert.ErrorIs(t, err, pg.ErrInvalidIdentifier)

		_, err = pg.NewUnique(&querier{}, "parents", "phone", pg.ScopedBy("Kindergarten", "kindergartenId"))
		assert.ErrorIs(t, err, pg.ErrInvalidIdentifier)
	})
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, pg.Healthcheck(pinger{})(context.Background()))
	err := pg.Healthcheck(pinger{err: errors.New("down")})(context.Background())
	assert.ErrorIs(t, err, pg.ErrHealthcheckFailed)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}
