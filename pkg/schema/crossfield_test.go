package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

func evaluate(cf schema.CrossField, input map[string]any) []validator.ValidationError {
	var ops []schema.Operand
	for _, expr := range cf.Exprs() {
		ops = append(ops, schema.Resolve(input, nil, expr))
	}
	return cf.Evaluate(ops)
}

func TestDateOrder(t *testing.T) {
	t.Parallel()
	rule := schema.DateOrder("startDate", "endDate")

	t.Run("end before start", func(t *testing.T) {
		errs := evaluate(rule, map[string]any{"startDate": "2024-09-01", "endDate": "2024-08-31"})
		require.Len(t, errs, 1)
		assert.Equal(t, validator.CodeDateOrder, errs[0].Code)
		assert.Equal(t, validator.NewPath("endDate"), errs[0].Path)
	})

	t.Run("same day is fine", func(t *testing.T) {
		assert.Empty(t, evaluate(rule, map[string]any{"startDate": "2024-09-01", "endDate": "2024-09-01"}))
	})

	t.Run("unparseable dates are ignored", func(t *testing.T) {
		assert.Empty(t, evaluate(rule, map[string]any{"startDate": "soon", "endDate": "2024-09-01"}))
	})
}

func TestMinMax(t *testing.T) {
	t.Parallel()
	rule := schema.MinMax("minAge", "maxAge")

	errs := evaluate(rule, map[string]any{"minAge": 5.0, "maxAge": 3.0})
	require.Len(t, errs, 1)
	assert.Equal(t, validator.CodeRangeOrder, errs[0].Code)
	assert.Equal(t, validator.NewPath("maxAge"), errs[0].Path)

	assert.Empty(t, evaluate(rule, map[string]any{"minAge": 3.0, "maxAge": 3.0}))
}

func TestSumAtMost(t *testing.T) {
	t.Parallel()
	rule := schema.SumAtMost("ageGroups.*.quota", "totalQuota", validator.CodeSumExceeded)

	t.Run("exceeded", func(t *testing.T) {
		errs := evaluate(rule, map[string]any{
			"totalQuota": 100.0,
			"ageGroups": []any{
				map[string]any{"quota": 60.0},
				map[string]any{"quota": 50.0},
			},
		})
		require.Len(t, errs, 1)
		assert.Equal(t, validator.CodeSumExceeded, errs[0].Code)
		assert.Equal(t, validator.NewPath("ageGroups"), errs[0].Path)
		assert.Equal(t, 110.0, errs[0].TranslationValues["sum"])
	})

	t.Run("equal is fine", func(t *testing.T) {
		assert.Empty(t, evaluate(rule, map[string]any{
			"totalQuota": 100.0,
			"ageGroups":  []any{map[string]any{"quota": 100.0}},
		}))
	})

	t.Run("budget over map values", func(t *testing.T) {
		budget := schema.SumAtMost("budget.allocated.*", "budget.total", "budget.exceeded")
		errs := evaluate(budget, map[string]any{
			"budget": map[string]any{
				"total":     1000.0,
				"allocated": map[string]any{"sms": 600.0, "email": 500.0},
			},
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "budget.exceeded", errs[0].Code)
		assert.Equal(t, validator.NewPath("budget", "allocated"), errs[0].Path)
	})
}

func TestAtMostAndCount(t *testing.T) {
	t.Parallel()

	errs := evaluate(schema.AtMost("availableQuota", "totalQuota", validator.CodeAvailable),
		map[string]any{"availableQuota": 31.0, "totalQuota": 30.0})
	require.Len(t, errs, 1)
	assert.Equal(t, validator.NewPath("availableQuota"), errs[0].Path)

	errs = evaluate(schema.CountAtMost("userIds", "maxUsers", validator.CodeLimitExceeded),
		map[string]any{"userIds": []any{"a", "b", "c"}, "maxUsers": 2.0})
	require.Len(t, errs, 1)
	assert.Equal(t, validator.CodeLimitExceeded, errs[0].Code)
	assert.Equal(t, validator.NewPath("userIds"), errs[0].Path)
}

func TestUnique(t *testing.T) {
	t.Parallel()

	errs := evaluate(schema.Unique("parents.*.parentId"), map[string]any{
		"parents": []any{
			map[string]any{"parentId": "p1"},
			map[string]any{"parentId": "p2"},
			map[string]any{"parentId": "p1"},
			map[string]any{"parentId": "p1"},
		},
	})
	require.Len(t, errs, 2)
	assert.Equal(t, validator.NewPath("parents", "2", "parentId"), errs[0].Path)
	assert.Equal(t, validator.NewPath("parents", "3", "parentId"), errs[1].Path)
	assert.Equal(t, validator.CodeDuplicate, errs[0].Code)
}

func TestNotEqual(t *testing.T) {
	t.Parallel()
	rule := schema.NotEqual("fromClassId", "toClassId")

	errs := evaluate(rule, map[string]any{"fromClassId": "c1", "toClassId": "c1"})
	require.Len(t, errs, 1)
	assert.Equal(t, validator.CodeSameValue, errs[0].Code)
	assert.Equal(t, validator.NewPath("toClassId"), errs[0].Path)

	assert.Empty(t, evaluate(rule, map[string]any{"fromClassId": "c1", "toClassId": "c2"}))
}

func TestCross(t *testing.T) {
	t.Parallel()
	rule := schema.Cross("custom.code", "must be smaller", "a",
		func(values ...any) bool { return values[0].(float64) < values[1].(float64) },
		"a", "b",
	)

	errs := evaluate(rule, map[string]any{"a": 3.0, "b": 2.0})
	require.Len(t, errs, 1)
	assert.Equal(t, "custom.code", errs[0].Code)
	assert.Equal(t, validator.NewPath("a"), errs[0].Path)

	assert.Empty(t, evaluate(rule, map[string]any{"a": 1.0, "b": 2.0}))
}

func TestEach(t *testing.T) {
	t.Parallel()
	rule := schema.Each("ageGroups", schema.MinMax("minAge", "maxAge"))
	assert.Equal(t, "ageGroups", rule.Scope())
	assert.Equal(t, validator.CodeRangeOrder, rule.Code())
}
