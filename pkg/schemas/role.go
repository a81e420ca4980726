package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const (
	Role = "role"

	OpAssign      = "assign"
	OpPermissions = "permissions"
)

var RoleTransitions = sm.MustNew(
	sm.Allow("active", "active", "disabled"),
	sm.Allow("disabled", "disabled", "active", "archived"),
	sm.Terminal("archived"),
)

const permissionCodePattern = `^[a-z][a-z_]*(:[a-z_]+)+$`

func permissionCodes(rules ...schema.Rule) schema.Field {
	return schema.Array("permissionCodes", schema.String("permissionCode", schema.Pattern(permissionCodePattern)), rules...)
}

func roleFields() []schema.Field {
	return []schema.Field{
		schema.String("name", schema.Required(), schema.MinLength(2), schema.MaxLength(50)),
		schema.String("code", schema.Required(), schema.Pattern(`^[a-z][a-z0-9_]{2,49}$`)),
		notes("description", 500),
		requiredID("kindergartenId"),
		schema.Integer("level", schema.Range(1, 10)),
		schema.Integer("login_attempts", schema.Range(1, 10)),
		schema.Integer("sessionTimeout", schema.Range(5, 1440)),
		schema.Integer("maxUsers", schema.Min(1)),
		permissionCodes(schema.MaxItems(200)),
		statusField(RoleTransitions),
	}
}

func roleRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithCrossFields(schema.Unique("permissionCodes.*")),
		schema.WithTransitions(RoleTransitions),
		schema.WithExternal(
			schema.External{ID: HookRoleCode, Path: "code", DependsOn: []string{"kindergartenId"}},
		),
	}
}

func registerRole(reg *schema.Registry) error {
	return registerAll(reg, Role, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(roleFields(), roleRules()...),
		OpUpdate: schema.NewEntity(updateFields(roleFields()), roleRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("kindergartenId"),
			statusField(RoleTransitions),
			schema.Integer("level", schema.Range(1, 10)),
		)),
		OpAssign: schema.NewEntity([]schema.Field{
			requiredID("roleId"),
			schema.Array("userIds", schema.String("userId", schema.UUID()),
				schema.Required(), schema.MinItems(1), schema.MaxItems(100)),
			schema.Integer("maxUsers", schema.Min(1)),
			schema.Date("expiresAt"),
		},
			schema.WithCrossFields(
				schema.Unique("userIds.*"),
				schema.CountAtMost("userIds", "maxUsers", validator.CodeLimitExceeded),
			),
			schema.WithExternal(schema.External{ID: HookRoleExists, Path: "roleId"}),
		),
		OpPermissions: schema.NewEntity([]schema.Field{
			requiredID("roleId"),
			permissionCodes(schema.Required(), schema.MinItems(1), schema.MaxItems(200)),
		},
			schema.WithCrossFields(schema.Unique("permissionCodes.*")),
			schema.WithExternal(schema.External{ID: HookRoleExists, Path: "roleId"}),
		),
	})
}
