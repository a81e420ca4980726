package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const EnrollmentPlan = "enrollment-plan"

// PlanTransitions is the lifecycle of an enrollment plan.
var PlanTransitions = sm.MustNew(
	sm.Allow("draft", "draft", "published", "active", "cancelled"),
	sm.Allow("published", "published", "active", "cancelled"),
	sm.Allow("active", "active", "paused", "completed", "cancelled"),
	sm.Allow("paused", "paused", "active", "cancelled"),
	sm.Terminal("completed", "cancelled"),
)

func planFields() []schema.Field {
	return []schema.Field{
		requiredID("kindergartenId"),
		schema.String("name", schema.Required(), schema.MinLength(2), schema.MaxLength(100)),
		schema.String("academicYear", schema.Required(), schema.Pattern(academicYearPattern)),
		schema.Date("startDate", schema.Required()),
		schema.Date("endDate", schema.Required()),
		schema.Integer("totalQuota", schema.Required(), schema.Range(1, 10000)),
		schema.Array("ageGroups", schema.Object("ageGroup", []schema.Field{
			schema.String("name", schema.Required(), schema.Enum(ageGroups...)),
			schema.Number("minAge", schema.Range(2, 7)),
			schema.Number("maxAge", schema.Range(2, 7)),
			schema.Integer("quota", schema.Required(), schema.Min(0)),
		}), schema.MinItems(1), schema.MaxItems(8)),
		statusField(PlanTransitions),
		notes("cancelReason", 500),
		notes("description", 2000),
	}
}

func planRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithConditionals(
			schema.When("status", schema.Equals("cancelled"), "cancelReason", schema.Required(), schema.MinLength(5)),
		),
		schema.WithCrossFields(
			schema.DateOrder("startDate", "endDate"),
			schema.SumAtMost("ageGroups.*.quota", "totalQuota", validator.CodeSumExceeded),
			schema.Unique("ageGroups.*.name"),
			schema.Each("ageGroups", schema.MinMax("minAge", "maxAge")),
		),
		schema.WithTransitions(PlanTransitions),
		schema.WithExternal(
			schema.External{ID: HookKindergartenExists, Path: "kindergartenId"},
			schema.External{ID: HookPlanNameUnique, Path: "name", DependsOn: []string{"kindergartenId"}},
		),
	}
}

func registerEnrollmentPlan(reg *schema.Registry) error {
	return registerAll(reg, EnrollmentPlan, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(planFields(), planRules()...),
		OpUpdate: schema.NewEntity(updateFields(planFields()), planRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("kindergartenId"),
			schema.String("academicYear", schema.Pattern(academicYearPattern)),
			statusField(PlanTransitions),
			schema.Date("startDate"),
			schema.Date("endDate"),
		), schema.WithCrossFields(schema.DateOrder("startDate", "endDate"))),
		OpStats: schema.NewEntity([]schema.Field{
			requiredID("kindergartenId"),
			schema.String("academicYear", schema.Pattern(academicYearPattern)),
			schema.Date("startDate"),
			schema.Date("endDate"),
			schema.String("groupBy", schema.Enum("ageGroup", "status", "month")),
		}, schema.WithCrossFields(schema.DateOrder("startDate", "endDate"))),
	})
}
