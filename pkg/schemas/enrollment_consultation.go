package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
)

const (
	EnrollmentConsultation = "enrollment-consultation"

	OpFeedback = "feedback"
)

var ConsultationTransitions = sm.MustNew(
	sm.Allow("pending", "pending", "contacted", "closed"),
	sm.Allow("contacted", "contacted", "visited", "converted", "closed"),
	sm.Allow("visited", "visited", "converted", "closed"),
	sm.Terminal("converted", "closed"),
)

var consultationSources = []string{"walk_in", "phone", "online", "referral", "campaign"}

func consultationFields() []schema.Field {
	return []schema.Field{
		requiredID("kindergartenId"),
		personName("parentName", schema.Required()),
		schema.String("phone", schema.Required(), schema.Phone()),
		schema.String("email", schema.Email()),
		schema.Number("childAge", schema.Range(0, 7)),
		schema.String("source", schema.Required(), schema.Enum(consultationSources...)),
		id("campaignId"),
		schema.Bool("visitRequested"),
		schema.Date("preferredDate"),
		statusField(ConsultationTransitions),
		notes("notes", 1000),
	}
}

func consultationRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithConditionals(
			schema.When("visitRequested", schema.IsTrue(), "preferredDate", schema.Required()),
			schema.When("source", schema.Equals("campaign"), "campaignId", schema.Required()),
		),
		schema.WithTransitions(ConsultationTransitions),
		schema.WithExternal(
			schema.External{ID: HookKindergartenExists, Path: "kindergartenId"},
			schema.External{ID: HookCampaignExists, Path: "campaignId"},
		),
	}
}

func registerEnrollmentConsultation(reg *schema.Registry) error {
	return registerAll(reg, EnrollmentConsultation, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(consultationFields(), consultationRules()...),
		OpUpdate: schema.NewEntity(updateFields(consultationFields()), consultationRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("kindergartenId"),
			schema.String("source", schema.Enum(consultationSources...)),
			statusField(ConsultationTransitions),
			schema.Date("createdFrom"),
			schema.Date("createdTo"),
		), schema.WithCrossFields(schema.DateOrder("createdFrom", "createdTo"))),
		OpFeedback: schema.NewEntity([]schema.Field{
			requiredID("id"),
			schema.Integer("rating", schema.Required(), schema.Range(1, 5)),
			notes("comment", 500),
			schema.Bool("followUpRequired"),
			schema.Date("followUpDate"),
		}, schema.WithConditionals(
			schema.When("followUpRequired", schema.IsTrue(), "followUpDate", schema.Required()),
		)),
	})
}
