// Package mongo connects to MongoDB through the v2 driver and provides the
// reference hook the validation engine uses to confirm that referenced
// records exist.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	plans := mongo.NewExists(db.Collection("enrollment_plans"), mongo.Where("deleted", false))
//	eng, err := engine.New(reg, engine.WithHook(schemas.HookPlanExists, plans))
//
// Exists counts at most one matching document. No match is reported as
// validator.CodeNotFound; a driver error is joined with ErrLookupFailed and
// makes the result inconclusive.
package mongo
