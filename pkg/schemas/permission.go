package schemas

import "github.com/dmitrymomot/kinderkit/pkg/schema"

const (
	Permission = "permission"

	OpCheck = "check"
)

var permissionActions = []string{"create", "read", "update", "delete", "manage"}

func permissionFields() []schema.Field {
	return []schema.Field{
		schema.String("code", schema.Required(), schema.Pattern(permissionCodePattern)),
		schema.String("name", schema.Required(), schema.MinLength(2), schema.MaxLength(50)),
		schema.String("resource", schema.Required(), schema.Pattern(`^[a-z][a-z_]{1,49}$`)),
		schema.String("action", schema.Required(), schema.Enum(permissionActions...)),
		schema.String("parentCode", schema.Pattern(permissionCodePattern)),
		notes("description", 500),
	}
}

func permissionRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithCrossFields(schema.NotEqual("code", "parentCode")),
		schema.WithExternal(schema.External{ID: HookPermissionCode, Path: "code"}),
	}
}

func registerPermission(reg *schema.Registry) error {
	return registerAll(reg, Permission, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(permissionFields(), permissionRules()...),
		OpUpdate: schema.NewEntity(updateFields(permissionFields()), permissionRules()...),
		OpQuery: schema.NewEntity(queryFields(
			schema.String("resource", schema.Pattern(`^[a-z][a-z_]{1,49}$`)),
			schema.String("action", schema.Enum(permissionActions...)),
		)),
		OpCheck: schema.NewEntity([]schema.Field{
			requiredID("userId"),
			schema.String("permissionCode", schema.Required(), schema.Pattern(permissionCodePattern)),
			id("resourceId"),
			id("kindergartenId"),
		}),
	})
}
