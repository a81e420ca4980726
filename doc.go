// Package kinderkit wires the validation engine to the kindergarten domain.
//
// The engine itself lives in pkg/engine and knows nothing about
// kindergartens; pkg/schemas declares the entity schemas and their message
// catalogs. New puts both together with logging, configuration, metrics and
// the store-backed hooks that answer uniqueness, capacity and reference
// rules.
//
// Basic Usage:
//
//	eng, err := kinderkit.New(ctx,
//		kinderkit.WithStores(kinderkit.Stores{Postgres: pool, Redis: rdb, Mongo: db}),
//		kinderkit.WithRegisterer(prometheus.DefaultRegisterer),
//	)
//	if err != nil {
//		return err
//	}
//
//	res, err := eng.Validate(ctx, schemas.EnrollmentPlan, schemas.OpUpdate, input,
//		engine.WithPrior(stored),
//		engine.WithLocale("en"),
//	)
//	if err != nil {
//		// unknown entity or operation
//	}
//	if !res.Valid {
//		for _, e := range res.Errors {
//			fmt.Println(e.Path, e.Code, e.Message)
//		}
//	}
//
// Configuration is read from KG_* environment variables unless WithConfig
// is given. Stores left nil disable the rules they would serve, unless
// KG_REQUIRE_HOOKS is set, in which case New fails.
package kinderkit
