package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
)

const (
	Teacher = "teacher"

	OpAddCertification = "addCertification"
)

var TeacherTransitions = sm.MustNew(
	sm.Allow("active", "active", "on_leave", "suspended", "resigned"),
	sm.Allow("on_leave", "on_leave", "active", "resigned"),
	sm.Allow("suspended", "suspended", "active", "resigned"),
	sm.Terminal("resigned"),
)

var (
	positions          = []string{"head_teacher", "assistant_teacher", "caregiver", "specialist"}
	certificationTypes = []string{"teaching", "childcare", "first_aid", "health", "language"}
)

func certificationFields() []schema.Field {
	return []schema.Field{
		schema.String("type", schema.Required(), schema.Enum(certificationTypes...)),
		schema.String("number", schema.Required(), schema.MaxLength(50)),
		schema.Date("issuedAt", schema.Required()),
		schema.Date("expiresAt"),
		schema.String("issuer", schema.MaxLength(100)),
	}
}

func teacherFields() []schema.Field {
	return []schema.Field{
		requiredID("kindergartenId"),
		personName("name", schema.Required()),
		schema.String("gender", schema.Enum(genders...)),
		schema.String("phone", schema.Required(), schema.Phone()),
		schema.String("email", schema.Required(), schema.Email()),
		schema.String("employeeNo", schema.Required(), schema.Pattern(`^T\d{4,8}$`)),
		schema.Date("hireDate", schema.Required()),
		schema.String("position", schema.Required(), schema.Enum(positions...)),
		schema.Array("subjects", schema.String("subject", schema.MaxLength(50)), schema.MaxItems(10)),
		schema.Array("certifications", schema.Object("certification", certificationFields()), schema.MaxItems(20)),
		statusField(TeacherTransitions),
	}
}

func teacherRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithCrossFields(
			schema.Each("certifications", schema.DateOrder("issuedAt", "expiresAt")),
			schema.Unique("certifications.*.number"),
		),
		schema.WithTransitions(TeacherTransitions),
		schema.WithExternal(
			schema.External{ID: HookTeacherEmployeeNo, Path: "employeeNo"},
			schema.External{ID: HookTeacherEmail, Path: "email"},
		),
	}
}

func registerTeacher(reg *schema.Registry) error {
	return registerAll(reg, Teacher, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(teacherFields(), teacherRules()...),
		OpUpdate: schema.NewEntity(updateFields(teacherFields()), teacherRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("kindergartenId"),
			schema.String("position", schema.Enum(positions...)),
			statusField(TeacherTransitions),
		)),
		OpAssignClass: schema.NewEntity([]schema.Field{
			requiredID("teacherId"),
			requiredID("classId"),
			schema.String("role", schema.Required(), schema.Enum("head", "assistant")),
			schema.Date("startDate", schema.Required()),
			schema.Date("endDate"),
		}, schema.WithCrossFields(schema.DateOrder("startDate", "endDate"))),
		OpUpdateStatus: schema.NewEntity([]schema.Field{
			requiredID("id"),
			statusField(TeacherTransitions, schema.Required()),
			notes("reason", 500),
			schema.Date("effectiveDate"),
		},
			schema.WithConditionals(
				schema.When("status", schema.OneOf("suspended", "resigned"), "reason", schema.Required()),
			),
			schema.WithTransitions(TeacherTransitions),
		),
		OpAddCertification: schema.NewEntity(
			append([]schema.Field{requiredID("teacherId")}, certificationFields()...),
			schema.WithCrossFields(schema.DateOrder("issuedAt", "expiresAt")),
		),
	})
}
