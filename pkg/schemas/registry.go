package schemas

import (
	"errors"
	"maps"
	"slices"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
)

// Register adds every entity schema of the kindergarten domain to reg.
// All defects are reported together.
func Register(reg *schema.Registry) error {
	return errors.Join(
		registerEnrollmentPlan(reg),
		registerEnrollmentQuota(reg),
		registerEnrollmentApplication(reg),
		registerEnrollmentConsultation(reg),
		registerKindergarten(reg),
		registerStudent(reg),
		registerTeacher(reg),
		registerParent(reg),
		registerRole(reg),
		registerPermission(reg),
		registerRolePermission(reg),
		registerUserRole(reg),
		registerMarketingCampaign(reg),
	)
}

// NewRegistry returns an unsealed registry holding the domain schemas.
func NewRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// MustNewRegistry is like NewRegistry but panics on a structural defect.
func MustNewRegistry() *schema.Registry {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}

func registerAll(reg *schema.Registry, entity string, ops map[string]*schema.Entity) error {
	var errs []error
	for _, op := range slices.Sorted(maps.Keys(ops)) {
		errs = append(errs, reg.Register(entity, op, ops[op]))
	}
	return errors.Join(errs...)
}
