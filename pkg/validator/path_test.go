package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

func TestPath(t *testing.T) {
	t.Parallel()

	t.Run("string rendering", func(t *testing.T) {
		tests := []struct {
			path validator.Path
			want string
		}{
			{validator.NewPath(), ""},
			{validator.NewPath("name"), "name"},
			{validator.NewPath("ageGroups", "1", "quota"), "ageGroups.1.quota"},
			{validator.NewPath("budget", "allocated", "sms"), "budget.allocated.sms"},
			{validator.NewPath("budget", "allocated", "2024"), "budget.allocated.2024"},
			{validator.NewPath("userIds", "3"), "userIds.3"},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, tt.path.String())
			if len(tt.path) > 0 {
				assert.Equal(t, tt.path, validator.ParsePath(tt.path.String()))
			}
		}
	})

	t.Run("child does not alias parent", func(t *testing.T) {
		base := make(validator.Path, 1, 4)
		base[0] = "root"
		a := base.Child("a")
		b := base.Child("b")
		assert.Equal(t, validator.NewPath("root", "a"), a)
		assert.Equal(t, validator.NewPath("root", "b"), b)
	})

	t.Run("index and field", func(t *testing.T) {
		p := validator.NewPath("ageGroups").Index(2)
		assert.Equal(t, validator.NewPath("ageGroups", "2"), p)
		assert.Equal(t, "ageGroups", p.Field())
		assert.Equal(t, "quota", p.Child("quota").Field())
	})

	t.Run("prefix", func(t *testing.T) {
		p := validator.ParsePath("budget.allocated.sms")
		assert.True(t, p.HasPrefix(validator.ParsePath("budget")))
		assert.True(t, p.HasPrefix(p))
		assert.False(t, p.HasPrefix(validator.ParsePath("budget.total")))
		assert.False(t, validator.ParsePath("budget").HasPrefix(p))
	})

	t.Run("parse empty", func(t *testing.T) {
		assert.Empty(t, validator.ParsePath(""))
	})
}
