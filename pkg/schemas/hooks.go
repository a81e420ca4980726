package schemas

// External rule IDs declared by the schemas in this package. Uniqueness
// checks are served by pkg/pg, capacity checks by pkg/redis and reference
// checks by pkg/mongo.
const (
	HookPlanNameUnique     = "enrollment-plan.name.unique"
	HookApplicationUnique  = "enrollment-application.id_card.unique"
	HookKindergartenCode   = "kindergarten.code.unique"
	HookTeacherEmployeeNo  = "teacher.employee_no.unique"
	HookTeacherEmail       = "teacher.email.unique"
	HookParentPhone        = "parent.phone.unique"
	HookRoleCode           = "role.code.unique"
	HookPermissionCode     = "permission.code.unique"
	HookLeadPhone          = "marketing-campaign.lead.phone.unique"
	HookQuotaCapacity      = "enrollment-quota.capacity"
	HookQuotaAvailable     = "enrollment-quota.available"
	HookClassCapacity      = "class.capacity"
	HookKindergartenExists = "kindergarten.exists"
	HookPlanExists         = "enrollment-plan.exists"
	HookStudentExists      = "student.exists"
	HookParentExists       = "parent.exists"
	HookRoleExists         = "role.exists"
	HookCampaignExists     = "marketing-campaign.exists"
)
