package schemas

import (
	"slices"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const (
	RolePermission = "role-permission"
	UserRole       = "user-role"

	OpBatchAssign = "batchAssign"
	OpRevoke      = "revoke"
)

// AssignmentTransitions is the lifecycle shared by role-permission grants.
var AssignmentTransitions = sm.MustNew(
	sm.Allow("pending", "pending", "active", "revoked"),
	sm.Allow("active", "active", "suspended", "revoked", "expired"),
	sm.Allow("suspended", "suspended", "active", "revoked"),
	sm.Terminal("revoked", "expired"),
)

// uuids declares a non-empty list of at most max identifiers.
func uuids(name string, max int, rules ...schema.Rule) schema.Field {
	return schema.Array(name, schema.String("id", schema.UUID()),
		slices.Concat(rules, []schema.Rule{schema.MinItems(1), schema.MaxItems(max)})...)
}

func registerRolePermission(reg *schema.Registry) error {
	return registerAll(reg, RolePermission, map[string]*schema.Entity{
		OpAssign: schema.NewEntity([]schema.Field{
			requiredID("roleId"),
			requiredID("permissionId"),
			requiredID("grantedBy"),
			schema.Date("effectiveFrom"),
			schema.Date("expiresAt"),
			schema.Map("conditions", schema.String("condition", schema.MaxLength(200)),
				schema.Keys("kindergartenId", "classId", "timeWindow"), schema.MaxItems(3)),
		},
			schema.WithCrossFields(schema.DateOrder("effectiveFrom", "expiresAt")),
			schema.WithExternal(schema.External{ID: HookRoleExists, Path: "roleId"}),
		),
		OpBatchAssign: schema.NewEntity([]schema.Field{
			requiredID("roleId"),
			uuids("permissionIds", 200, schema.Required()),
			schema.Integer("maxPermissions", schema.Min(1)),
			requiredID("grantedBy"),
		},
			schema.WithCrossFields(
				schema.Unique("permissionIds.*"),
				schema.CountAtMost("permissionIds", "maxPermissions", validator.CodeLimitExceeded),
			),
			schema.WithExternal(schema.External{ID: HookRoleExists, Path: "roleId"}),
		),
		OpRevoke: schema.NewEntity([]schema.Field{
			requiredID("roleId"),
			requiredID("permissionId"),
			schema.String("reason", schema.Required(), schema.MinLength(5), schema.MaxLength(500)),
		}),
		OpQuery: schema.NewEntity(queryFields(
			id("roleId"),
			id("permissionId"),
			statusField(AssignmentTransitions),
		)),
		OpUpdate: schema.NewEntity([]schema.Field{
			requiredID("id"),
			statusField(AssignmentTransitions, schema.Required()),
			schema.Date("expiresAt"),
			notes("reason", 500),
		},
			schema.WithConditionals(
				schema.When("status", schema.OneOf("revoked", "suspended"), "reason", schema.Required()),
			),
			schema.WithTransitions(AssignmentTransitions),
		),
	})
}

func registerUserRole(reg *schema.Registry) error {
	return registerAll(reg, UserRole, map[string]*schema.Entity{
		OpAssign: schema.NewEntity([]schema.Field{
			requiredID("userId"),
			requiredID("roleId"),
			id("kindergartenId"),
			schema.Date("effectiveFrom"),
			schema.Date("effectiveTo"),
		},
			schema.WithCrossFields(schema.DateOrder("effectiveFrom", "effectiveTo")),
			schema.WithExternal(schema.External{ID: HookRoleExists, Path: "roleId"}),
		),
		OpRevoke: schema.NewEntity([]schema.Field{
			requiredID("userId"),
			requiredID("roleId"),
			notes("reason", 500),
		}),
		OpQuery: schema.NewEntity(queryFields(
			id("userId"),
			id("roleId"),
			id("kindergartenId"),
		)),
		OpBatchAssign: schema.NewEntity([]schema.Field{
			uuids("userIds", 100, schema.Required()),
			uuids("roleIds", 10, schema.Required()),
			id("kindergartenId"),
		},
			schema.WithCrossFields(
				schema.Unique("userIds.*"),
				schema.Unique("roleIds.*"),
			),
		),
	})
}
