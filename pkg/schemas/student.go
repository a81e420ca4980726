package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
)

const (
	Student = "student"

	OpAssignClass       = "assignClass"
	OpAddParentRelation = "addParentRelation"
	OpUpdateStatus      = "updateStatus"
)

var StudentTransitions = sm.MustNew(
	sm.Allow("enrolled", "enrolled", "suspended", "graduated", "transferred", "withdrawn"),
	sm.Allow("suspended", "suspended", "enrolled", "withdrawn"),
	sm.Terminal("graduated", "transferred", "withdrawn"),
)

func studentFields() []schema.Field {
	return []schema.Field{
		requiredID("kindergartenId"),
		personName("name", schema.Required()),
		schema.String("gender", schema.Required(), schema.Enum(genders...)),
		schema.Date("birthDate", schema.Required()),
		schema.String("idCardNumber", schema.Pattern(idCardPattern)),
		schema.Date("enrollmentDate", schema.Required()),
		id("classId"),
		schema.Object("healthInfo", []schema.Field{
			schema.Array("allergies", schema.String("allergy", schema.MaxLength(50)), schema.MaxItems(20)),
			schema.String("bloodType", schema.Enum("A", "B", "AB", "O")),
			notes("medicalNotes", 1000),
		}),
		schema.Array("emergencyContacts", schema.Object("contact", []schema.Field{
			personName("name", schema.Required()),
			schema.String("phone", schema.Required(), schema.Phone()),
			schema.String("relationship", schema.Required(), schema.Enum(relationships...)),
		}), schema.MaxItems(3)),
		statusField(StudentTransitions),
	}
}

func studentRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithCrossFields(
			schema.DateOrder("birthDate", "enrollmentDate"),
			schema.Unique("emergencyContacts.*.phone"),
		),
		schema.WithTransitions(StudentTransitions),
		schema.WithExternal(
			schema.External{ID: HookKindergartenExists, Path: "kindergartenId"},
		),
	}
}

func relationFields(from string) []schema.Field {
	return []schema.Field{
		requiredID(from),
		schema.String("relationship", schema.Required(), schema.Enum(relationships...)),
		schema.Bool("isPrimary"),
		schema.Bool("canPickUp"),
		notes("pickUpNotes", 200),
	}
}

func registerStudent(reg *schema.Registry) error {
	return registerAll(reg, Student, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(studentFields(), studentRules()...),
		OpUpdate: schema.NewEntity(updateFields(studentFields()), studentRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("kindergartenId"),
			id("classId"),
			statusField(StudentTransitions),
			schema.String("gender", schema.Enum(genders...)),
		)),
		OpAssignClass: schema.NewEntity([]schema.Field{
			requiredID("studentId"),
			requiredID("classId"),
			schema.Date("effectiveDate", schema.Required()),
		}, schema.WithExternal(
			schema.External{ID: HookClassCapacity, Path: "classId"},
		)),
		OpAddParentRelation: schema.NewEntity(
			append([]schema.Field{requiredID("studentId")}, relationFields("parentId")...),
			schema.WithExternal(
				schema.External{ID: HookParentExists, Path: "parentId"},
			),
		),
		OpUpdateStatus: schema.NewEntity([]schema.Field{
			requiredID("id"),
			statusField(StudentTransitions, schema.Required()),
			notes("reason", 500),
			schema.Date("effectiveDate"),
		},
			schema.WithConditionals(
				schema.When("status", schema.OneOf("suspended", "transferred", "withdrawn"), "reason", schema.Required()),
			),
			schema.WithTransitions(StudentTransitions),
		),
	})
}
