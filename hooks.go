package kinderkit

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	kgmongo "github.com/dmitrymomot/kinderkit/pkg/mongo"
	"github.com/dmitrymomot/kinderkit/pkg/pg"
	"github.com/dmitrymomot/kinderkit/pkg/redis"
	"github.com/dmitrymomot/kinderkit/pkg/schemas"
)

// Stores are the backends behind the external rules. Any of them may be
// nil; the rules it would serve are then skipped by the engine.
type Stores struct {
	// Postgres answers the uniqueness rules.
	Postgres pg.Querier
	// Redis holds the capacity counters under RedisPrefix.
	Redis       redis.MultiGetter
	RedisPrefix string
	// Mongo holds the records referenced by identifier.
	Mongo *mongo.Database
}

type uniqueRule struct {
	id     string
	table  string
	column string
	opts   []pg.UniqueOption
}

var uniqueRules = []uniqueRule{
	{schemas.HookPlanNameUnique, "enrollment_plans", "name", []pg.UniqueOption{pg.ScopedBy("kindergarten_id", "kindergartenId"), pg.ExcludeSelf("id", "id")}},
	{schemas.HookApplicationUnique, "enrollment_applications", "id_card_number", []pg.UniqueOption{pg.ScopedBy("plan_id", "planId"), pg.ExcludeSelf("id", "id")}},
	{schemas.HookKindergartenCode, "kindergartens", "code", []pg.UniqueOption{pg.ExcludeSelf("id", "id")}},
	{schemas.HookTeacherEmployeeNo, "teachers", "employee_no", []pg.UniqueOption{pg.ExcludeSelf("id", "id")}},
	{schemas.HookTeacherEmail, "teachers", "email", []pg.UniqueOption{pg.ExcludeSelf("id", "id")}},
	{schemas.HookParentPhone, "parents", "phone", []pg.UniqueOption{pg.ExcludeSelf("id", "id")}},
	{schemas.HookRoleCode, "roles", "code", []pg.UniqueOption{pg.ScopedBy("kindergarten_id", "kindergartenId"), pg.ExcludeSelf("id", "id")}},
	{schemas.HookPermissionCode, "permissions", "code", []pg.UniqueOption{pg.ExcludeSelf("id", "id")}},
	{schemas.HookLeadPhone, "campaign_leads", "phone", []pg.UniqueOption{pg.ScopedBy("campaign_id", "campaignId")}},
}

// Collections holding the referenced records, by rule ID.
var referenceCollections = map[string]string{
	schemas.HookKindergartenExists: "kindergartens",
	schemas.HookPlanExists:         "enrollment_plans",
	schemas.HookStudentExists:      "students",
	schemas.HookParentExists:       "parents",
	schemas.HookRoleExists:         "roles",
	schemas.HookCampaignExists:     "marketing_campaigns",
}

// StoreHooks maps the external rule IDs of the domain schemas onto hooks
// served by s.
func StoreHooks(s Stores) (engine.Hooks, error) {
	hooks := make(engine.Hooks)

	if s.Postgres != nil {
		var errs []error
		for _, r := range uniqueRules {
			h, err := pg.NewUnique(s.Postgres, r.table, r.column, r.opts...)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			hooks[r.id] = h
		}
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
	}

	if s.Redis != nil {
		prefix := s.RedisPrefix
		if prefix == "" {
			prefix = ServiceName
		}
		hooks[schemas.HookQuotaCapacity] = redis.NewCapacity(s.Redis, prefix+":kindergarten", redis.KeyFrom("kindergartenId"))
		hooks[schemas.HookQuotaAvailable] = redis.NewCapacity(s.Redis, prefix+":quota", redis.KeyFrom("fromQuotaId"))
		hooks[schemas.HookClassCapacity] = redis.NewCapacity(s.Redis, prefix+":class")
	}

	if s.Mongo != nil {
		for id, name := range referenceCollections {
			var opts []kgmongo.ExistsOption
			if id == schemas.HookRoleExists {
				opts = append(opts, kgmongo.Where("status", bson.D{{Key: "$ne", Value: "archived"}}))
			}
			hooks[id] = kgmongo.NewExists(s.Mongo.Collection(name), opts...)
		}
	}

	return hooks, nil
}
