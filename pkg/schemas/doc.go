// Package schemas declares the validation schemas of the kindergarten
// domain: enrollment plans, quotas, applications and consultations,
// kindergartens, students, teachers, parents, roles, permissions and their
// assignments, and marketing campaigns.
//
// Each entity registers one schema per operation under its entity name:
//
//	reg, err := schemas.NewRegistry()
//	if err != nil {
//		return err
//	}
//	eng, err := engine.New(reg, engine.WithTranslator(tr))
//
// Stateful entities export their transition matrix (PlanTransitions,
// CampaignTransitions and so on). Create operations accept any declared
// status; update operations check the proposed status against the prior
// record.
//
// External rules reference the Hook* identifiers. They are skipped until an
// implementation is configured on the engine.
package schemas
