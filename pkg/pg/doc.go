// Package pg connects to PostgreSQL through pgx/v5 and provides the
// uniqueness hooks the validation engine calls for external rules.
//
// Connect opens a *pgxpool.Pool from Config, retrying while the database
// comes up; Healthcheck wraps the pool in a readiness probe.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	code, err := pg.NewUnique(pool, "kindergartens", "code", pg.ExcludeSelf("id", "id"))
//	if err != nil {
//		return err
//	}
//	eng, err := engine.New(reg, engine.WithHook(schemas.HookKindergartenCode, code))
//
// A Unique hook runs a single SELECT EXISTS query. Scope columns narrow the
// lookup to rows sharing a value with the input (ScopedBy) and ExcludeSelf
// keeps an update from colliding with its own row. Table and column names
// are validated when the hook is built and quoted in the query.
//
// Query errors are returned joined with ErrLookupFailed; the engine reports
// them as an inconclusive result rather than a violation.
package pg
