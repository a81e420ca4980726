package schemas

import "github.com/dmitrymomot/kinderkit/pkg/schema"

const (
	Parent = "parent"

	OpParentChildRelation = "parentChildRelation"
)

var contactPreferences = []string{"phone", "sms", "email", "wechat"}

func parentFields() []schema.Field {
	return []schema.Field{
		personName("name", schema.Required()),
		schema.String("phone", schema.Required(), schema.Phone()),
		schema.String("email", schema.Email()),
		schema.String("idCardNumber", schema.Pattern(idCardPattern)),
		schema.String("occupation", schema.MaxLength(100)),
		schema.String("workplace", schema.MaxLength(200)),
		address(),
		schema.String("wechatId", schema.MaxLength(50)),
		schema.String("contactPreference", schema.Enum(contactPreferences...)),
	}
}

func parentRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithConditionals(
			schema.When("contactPreference", schema.Equals("email"), "email", schema.Required()),
			schema.When("contactPreference", schema.Equals("wechat"), "wechatId", schema.Required()),
		),
		schema.WithExternal(
			schema.External{ID: HookParentPhone, Path: "phone"},
		),
	}
}

func registerParent(reg *schema.Registry) error {
	return registerAll(reg, Parent, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(parentFields(), parentRules()...),
		OpUpdate: schema.NewEntity(updateFields(parentFields()), parentRules()...),
		OpQuery: schema.NewEntity(queryFields(
			schema.String("phone", schema.Phone()),
			id("studentId"),
		)),
		OpParentChildRelation: schema.NewEntity(
			append([]schema.Field{requiredID("parentId")}, relationFields("studentId")...),
			schema.WithExternal(
				schema.External{ID: HookStudentExists, Path: "studentId"},
			),
		),
	})
}
