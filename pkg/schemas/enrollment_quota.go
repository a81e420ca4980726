package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const (
	EnrollmentQuota = "enrollment-quota"

	OpAllocate = "allocate"
	OpTransfer = "transfer"
)

var QuotaTransitions = sm.MustNew(
	sm.Allow("draft", "draft", "active", "closed"),
	sm.Allow("active", "active", "frozen", "exhausted", "closed"),
	sm.Allow("frozen", "frozen", "active", "closed"),
	sm.Allow("exhausted", "exhausted", "active", "closed"),
	sm.Terminal("closed"),
)

func quotaFields() []schema.Field {
	return []schema.Field{
		requiredID("planId"),
		requiredID("kindergartenId"),
		schema.String("ageGroup", schema.Required(), schema.Enum(ageGroups...)),
		schema.Integer("totalQuota", schema.Required(), schema.Range(1, 1000)),
		schema.Integer("reservedQuota", schema.Min(0)),
		schema.Integer("availableQuota", schema.Min(0)),
		statusField(QuotaTransitions),
		notes("freezeReason", 500),
	}
}

func quotaRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithConditionals(
			schema.When("status", schema.Equals("frozen"), "freezeReason", schema.Required()),
		),
		schema.WithCrossFields(
			schema.AtMost("availableQuota", "totalQuota", validator.CodeAvailable),
			schema.AtMost("reservedQuota", "totalQuota", validator.CodeLimitExceeded),
		),
		schema.WithTransitions(QuotaTransitions),
		schema.WithExternal(
			schema.External{ID: HookPlanExists, Path: "planId"},
			schema.External{ID: HookQuotaCapacity, Path: "totalQuota", DependsOn: []string{"kindergartenId"}, After: []string{HookPlanExists}},
		),
	}
}

func registerEnrollmentQuota(reg *schema.Registry) error {
	return registerAll(reg, EnrollmentQuota, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(quotaFields(), quotaRules()...),
		OpUpdate: schema.NewEntity(updateFields(quotaFields()), quotaRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("planId"),
			id("kindergartenId"),
			schema.String("ageGroup", schema.Enum(ageGroups...)),
			statusField(QuotaTransitions),
		)),
		OpAllocate: schema.NewEntity([]schema.Field{
			requiredID("quotaId"),
			requiredID("kindergartenId"),
			schema.Integer("totalQuota", schema.Required(), schema.Range(1, 1000)),
			schema.Array("allocations", schema.Object("allocation", []schema.Field{
				requiredID("classId"),
				schema.String("ageGroup", schema.Required(), schema.Enum(ageGroups...)),
				schema.Integer("count", schema.Required(), schema.Range(1, 500)),
			}), schema.Required(), schema.MinItems(1), schema.MaxItems(50)),
		},
			schema.WithCrossFields(
				schema.SumAtMost("allocations.*.count", "totalQuota", validator.CodeSumExceeded),
				schema.Unique("allocations.*.classId"),
			),
			schema.WithExternal(
				schema.External{ID: HookQuotaCapacity, Path: "totalQuota", DependsOn: []string{"kindergartenId"}},
			),
		),
		OpTransfer: schema.NewEntity([]schema.Field{
			requiredID("fromQuotaId"),
			requiredID("toQuotaId"),
			schema.Integer("amount", schema.Required(), schema.Range(1, 1000)),
			notes("reason", 500),
		},
			schema.WithCrossFields(schema.NotEqual("fromQuotaId", "toQuotaId")),
			schema.WithExternal(
				schema.External{ID: HookQuotaAvailable, Path: "amount", DependsOn: []string{"fromQuotaId", "toQuotaId"}},
			),
		),
	})
}
