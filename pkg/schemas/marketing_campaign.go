package schemas

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	sm "github.com/dmitrymomot/kinderkit/pkg/statemachine"
)

const (
	MarketingCampaign = "marketing-campaign"

	OpAnalytics = "analytics"
	OpAsset     = "asset"
	OpLead      = "lead"
	OpReport    = "report"
)

// Violation codes specific to campaigns.
const (
	CodeBudgetExceeded = "budget.exceeded"
	CodeConsent        = "consent.required"
)

var CampaignTransitions = sm.MustNew(
	sm.Allow("draft", "draft", "scheduled", "active", "cancelled"),
	sm.Allow("scheduled", "scheduled", "active", "cancelled"),
	sm.Allow("active", "active", "paused", "completed", "cancelled"),
	sm.Allow("paused", "paused", "active", "completed", "cancelled"),
	sm.Terminal("completed", "cancelled"),
)

var (
	campaignTypes = []string{"open_day", "referral", "online_ads", "social_media", "event"}
	channels      = []string{"email", "sms", "wechat", "ads", "offline"}
)

func campaignFields() []schema.Field {
	return []schema.Field{
		requiredID("kindergartenId"),
		schema.String("name", schema.Required(), schema.MinLength(2), schema.MaxLength(100)),
		schema.String("type", schema.Required(), schema.Enum(campaignTypes...)),
		schema.Date("startDate", schema.Required()),
		schema.Date("endDate", schema.Required()),
		schema.Object("budget", []schema.Field{
			schema.Number("total", schema.Required(), schema.Min(0)),
			schema.Map("allocated", schema.Number("amount", schema.Min(0)), schema.Keys(channels...)),
		}),
		schema.Object("targetAudience", []schema.Field{
			schema.Integer("ageMin", schema.Range(0, 7)),
			schema.Integer("ageMax", schema.Range(0, 7)),
			schema.Array("districts", schema.String("district", schema.MaxLength(50)), schema.MaxItems(20)),
		}),
		schema.Array("channels", schema.String("channel", schema.Enum(channels...)), schema.Required(), schema.MinItems(1)),
		statusField(CampaignTransitions),
		notes("description", 2000),
	}
}

func campaignRules() []schema.EntityOption {
	return []schema.EntityOption{
		schema.WithCrossFields(
			schema.DateOrder("startDate", "endDate"),
			schema.SumAtMost("budget.allocated.*", "budget.total", CodeBudgetExceeded),
			schema.MinMax("targetAudience.ageMin", "targetAudience.ageMax"),
		),
		schema.WithTransitions(CampaignTransitions),
		schema.WithExternal(schema.External{ID: HookKindergartenExists, Path: "kindergartenId"}),
	}
}

func consented(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func campaignRef() schema.EntityOption {
	return schema.WithExternal(schema.External{ID: HookCampaignExists, Path: "campaignId"})
}

func registerMarketingCampaign(reg *schema.Registry) error {
	return registerAll(reg, MarketingCampaign, map[string]*schema.Entity{
		OpCreate: schema.NewEntity(campaignFields(), campaignRules()...),
		OpUpdate: schema.NewEntity(updateFields(campaignFields()), campaignRules()...),
		OpQuery: schema.NewEntity(queryFields(
			id("kindergartenId"),
			schema.String("type", schema.Enum(campaignTypes...)),
			statusField(CampaignTransitions),
			schema.Date("startDate"),
			schema.Date("endDate"),
		), schema.WithCrossFields(schema.DateOrder("startDate", "endDate"))),
		OpAnalytics: schema.NewEntity([]schema.Field{
			requiredID("campaignId"),
			schema.Date("startDate", schema.Required()),
			schema.Date("endDate", schema.Required()),
			schema.Array("metrics", schema.String("metric",
				schema.Enum("impressions", "clicks", "leads", "conversions", "cost")),
				schema.Required(), schema.MinItems(1)),
			schema.String("groupBy", schema.Enum("day", "week", "month", "channel")),
		}, schema.WithCrossFields(schema.DateOrder("startDate", "endDate")), campaignRef()),
		OpAsset: schema.NewEntity([]schema.Field{
			requiredID("campaignId"),
			schema.String("type", schema.Required(), schema.Enum("image", "video", "document", "link")),
			schema.String("name", schema.Required(), schema.MaxLength(100)),
			schema.String("url", schema.Required(), schema.Pattern(`^https?://\S+$`), schema.MaxLength(2048)),
			schema.Integer("sizeBytes", schema.Range(1, 100<<20)),
			schema.String("mimeType", schema.Pattern(`^[a-z]+/[a-z0-9.+-]+$`)),
		},
			schema.WithConditionals(
				schema.When("type", schema.OneOf("image", "video", "document"), "sizeBytes", schema.Required()),
			),
			campaignRef(),
		),
		OpLead: schema.NewEntity([]schema.Field{
			requiredID("campaignId"),
			personName("parentName", schema.Required()),
			schema.String("phone", schema.Required(), schema.Phone()),
			schema.String("email", schema.Email()),
			schema.Number("childAge", schema.Range(0, 7)),
			schema.String("channel", schema.Required(), schema.Enum(channels...)),
			schema.Bool("consent", schema.Required(),
				schema.Custom(CodeConsent, "consent must be given", consented)),
		}, schema.WithExternal(
			schema.External{ID: HookCampaignExists, Path: "campaignId"},
			schema.External{ID: HookLeadPhone, Path: "phone", DependsOn: []string{"campaignId"}, After: []string{HookCampaignExists}},
		)),
		OpReport: schema.NewEntity([]schema.Field{
			requiredID("campaignId"),
			schema.String("format", schema.Required(), schema.Enum("pdf", "csv", "xlsx")),
			schema.Date("startDate", schema.Required()),
			schema.Date("endDate", schema.Required()),
			schema.Array("sections", schema.String("section",
				schema.Enum("summary", "channels", "leads", "budget")), schema.MinItems(1)),
			schema.Array("recipients", schema.String("recipient", schema.Email()), schema.MaxItems(10)),
		}, schema.WithCrossFields(schema.DateOrder("startDate", "endDate")), campaignRef()),
	})
}
