package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const Kindergarten = "kindergarten"

var KindergartenTransitions = sm.MustNew(
	sm.Allow("active", "active", "suspended", "closed"),
	sm.Allow("suspended", "suspended", "active", "closed"),
	sm.Terminal("closed"),
)

var grades = []string{"nursery", "junior", "middle", "senior"}

func kindergartenFields() []schema.Field {
	return []schema.Field{
		schema.String("name", schema.Required(), schema.MinLength(2), schema.MaxLength(100)),
		schema.String("code", schema.Required(), schema.Pattern(codePattern)),
		schema.String("type", schema.Required(), schema.Enum("public", "private", "inclusive")),
		address(schema.Required()),
		schema.String("contactPhone", schema.Required(), schema.Phone()),
		schema.String("contactEmail", schema.Email()),
		schema.Integer("capacity", schema.Required(), schema.Range(1, 5000)),
		schema.Integer("currentEnrollment", schema.Min(0)),
		schema.Array("classes", schema.Object("class", []schema.Field{
			schema.String("name", schema.Required(), schema.MaxLength(50)),
			schema.String("grade", schema.Required(), schema.Enum(grades...)),
			schema.Integer("capacity", schema.Required(), schema.Range(1, 60)),
		}), schema.MaxItems(100)),
		schema.Date("establishedAt"),
		schema.String("licenseNumber", schema.MaxLength(50)),
		statusField(KindergartenTransitions),
	}
}

func kindergartenRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithCrossFields(
			schema.AtMost("currentEnrollment", "capacity", validator.CodeLimitExceeded),
			schema.SumAtMost("classes.*.capacity", "capacity", validator.CodeSumExceeded),
			schema.Unique("classes.*.name"),
		),
		schema.WithTransitions(KindergartenTransitions),
		schema.WithExternal(
			schema.External{ID: HookKindergartenCode, Path: "code"},
		),
	}
}

func registerKindergarten(reg *schema.Registry) error {
	return registerAll(reg, Kindergarten, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(kindergartenFields(), kindergartenRules()...),
		OpUpdate: schema.NewEntity(updateFields(kindergartenFields()), kindergartenRules()...),
		OpQuery: schema.NewEntity(queryFields(
			schema.String("type", schema.Enum("public", "private", "inclusive")),
			schema.String("city", schema.MaxLength(50)),
			statusField(KindergartenTransitions),
		)),
		OpStats: schema.NewEntity([]schema.Field{
			requiredID("kindergartenId"),
			schema.Date("startDate", schema.Required()),
			schema.Date("endDate", schema.Required()),
			schema.Array("metrics", schema.String("metric", schema.Enum("enrollment", "attendance", "capacity", "staffing")),
				schema.MinItems(1)),
		}, schema.WithCrossFields(schema.DateOrder("startDate", "endDate"))),
	})
}
