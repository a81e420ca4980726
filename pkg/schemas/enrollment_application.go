package schemas

import (
	"time"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const (
	EnrollmentApplication = "enrollment-application"

	OpReview = "review"
)

// CodeAgeRange reports a child outside the admission age window.
const CodeAgeRange = "age.out_of_range"

// Admission age window in whole years at the expected start date.
const (
	MinAdmissionAge = 2
	MaxAdmissionAge = 7
)

var ApplicationTransitions = sm.MustNew(
	sm.Allow("submitted", "submitted", "reviewing", "withdrawn"),
	sm.Allow("reviewing", "reviewing", "interview", "approved", "rejected", "waitlisted", "withdrawn"),
	sm.Allow("interview", "interview", "approved", "rejected", "waitlisted", "withdrawn"),
	sm.Allow("waitlisted", "waitlisted", "approved", "rejected", "withdrawn"),
	sm.Allow("approved", "approved", "enrolled", "withdrawn"),
	sm.Terminal("rejected", "enrolled", "withdrawn"),
)

func applicationFields() []schema.Field {
	return []schema.Field{
		requiredID("planId"),
		personName("childName", schema.Required()),
		schema.String("childGender", schema.Required(), schema.Enum(genders...)),
		schema.Date("childBirthDate", schema.Required()),
		schema.String("idCardNumber", schema.Pattern(idCardPattern)),
		personName("parentName", schema.Required()),
		schema.String("parentPhone", schema.Required(), schema.Phone()),
		schema.String("parentEmail", schema.Email()),
		schema.String("relationship", schema.Required(), schema.Enum(relationships...)),
		address(),
		schema.Date("expectedStartDate"),
		schema.Bool("specialNeeds"),
		notes("specialNeedsDescription", 1000),
		statusField(ApplicationTransitions),
		notes("rejectReason", 500),
	}
}

func applicationRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithConditionals(
			schema.When("specialNeeds", schema.IsTrue(), "specialNeedsDescription", schema.Required()),
			schema.When("status", schema.Equals("rejected"), "rejectReason", schema.Required()),
		),
		schema.WithCrossFields(
			schema.DateOrder("childBirthDate", "expectedStartDate"),
			schema.Cross(CodeAgeRange, "child is outside the admission age range", "childBirthDate",
				admissionAge, "childBirthDate", "expectedStartDate"),
		),
		schema.WithTransitions(ApplicationTransitions),
		schema.WithExternal(
			schema.External{ID: HookPlanExists, Path: "planId"},
			schema.External{ID: HookApplicationUnique, Path: "idCardNumber", DependsOn: []string{"planId"}, After: []string{HookPlanExists}},
		),
	}
}

// admissionAge holds when the child's age in whole years at the start date
// lies within the admission window.
func admissionAge(values ...any) bool {
	birth, err1 := date(values[0])
	start, err2 := date(values[1])
	if err1 != nil || err2 != nil || start.Before(birth) {
		return true
	}
	age := start.Year() - birth.Year()
	if start.Month() < birth.Month() || (start.Month() == birth.Month() && start.Day() < birth.Day()) {
		age--
	}
	return age >= MinAdmissionAge && age <= MaxAdmissionAge
}

func date(v any) (time.Time, error) {
	s, _ := v.(string)
	return time.Parse(validator.DateLayout, s)
}

func registerEnrollmentApplication(reg *schema.Registry) error {
	return registerAll(reg, EnrollmentApplication, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(applicationFields(), applicationRules()...),
		OpUpdate: schema.NewEntity(updateFields(applicationFields()), applicationRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("planId"),
			statusField(ApplicationTransitions),
			schema.Date("submittedFrom"),
			schema.Date("submittedTo"),
		), schema.WithCrossFields(schema.DateOrder("submittedFrom", "submittedTo"))),
		OpReview: schema.NewEntity([]schema.Field{
			requiredID("id"),
			requiredID("reviewerId"),
			statusField(ApplicationTransitions, schema.Required()),
			notes("comment", 500),
			schema.Date("interviewDate"),
		},
			schema.WithConditionals(
				schema.When("status", schema.Equals("rejected"), "comment", schema.Required()),
				schema.When("status", schema.Equals("interview"), "interviewDate", schema.Required()),
			),
			schema.WithTransitions(ApplicationTransitions),
		),
	})
}
