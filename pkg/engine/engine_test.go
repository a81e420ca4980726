package engine_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/i18n"
	"github.com/dmitrymomot/kinderkit/pkg/logger"
	"github.com/dmitrymomot/kinderkit/pkg/metrics"
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

func planEntity() *schema.Entity {
	matrix := statemachine.MustNew(
		statemachine.Allow("draft", "draft", "active", "cancelled"),
		statemachine.Allow("active", "active", "completed", "cancelled"),
		statemachine.Terminal("completed", "cancelled"),
	)
	return schema.NewEntity([]schema.Field{
		schema.String("name", schema.Required(), schema.MaxLength(20)),
		schema.Date("startDate", schema.Required()),
		schema.Date("endDate", schema.Required()),
		schema.Integer("totalQuota", schema.Required(), schema.Min(1)),
		schema.Array("ageGroups", schema.Object("group", []schema.Field{
			schema.String("name", schema.Required()),
			schema.Integer("quota", schema.Required(), schema.Min(0)),
			schema.Integer("minAge", schema.Range(2, 7)),
			schema.Integer("maxAge", schema.Range(2, 7)),
		})),
		schema.String("status", schema.Enum("draft", "active", "completed", "cancelled")),
		schema.String("reason"),
		schema.String("contactEmail", schema.Email()),
		schema.String("contactPhone", schema.Phone()),
		schema.Array("tags", schema.String("tag")),
	},
		schema.WithConditionals(
			schema.When("status", schema.Equals("cancelled"), "reason", schema.Required(), schema.MinLength(5)),
		),
		schema.WithCrossFields(
			schema.DateOrder("startDate", "endDate"),
			schema.SumAtMost("ageGroups.*.quota", "totalQuota", validator.CodeSumExceeded),
			schema.Each("ageGroups", schema.MinMax("minAge", "maxAge")),
		),
		schema.WithTransitions(matrix),
		schema.WithExternal(
			schema.External{ID: "plan.name.unique", Path: "name"},
			schema.External{ID: "plan.quota.capacity", Path: "totalQuota", DependsOn: []string{"ageGroups"}, After: []string{"plan.name.unique"}},
		),
	)
}

func newRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register("plan", "create", planEntity()))
	require.NoError(t, reg.Register("plan", "update", planEntity()))
	return reg
}

func newEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	eng, err := engine.New(newRegistry(t), opts...)
	require.NoError(t, err)
	return eng
}

func validPlan() map[string]any {
	return map[string]any{
		"name":       "Spring intake",
		"startDate":  "2024-03-01",
		"endDate":    "2024-06-30",
		"totalQuota": 100,
		"ageGroups": []any{
			map[string]any{"name": "small", "quota": 40, "minAge": 3, "maxAge": 4},
			map[string]any{"name": "middle", "quota": 60},
		},
		"status": "draft",
	}
}

func codes(errs validator.ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidate(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		t.Parallel()
		res, err := eng.Validate(ctx, "plan", "create", validPlan())
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.True(t, res.Conclusive())
	})

	t.Run("one required error per missing field in declaration order", func(t *testing.T) {
		t.Parallel()
		res, err := eng.Validate(ctx, "plan", "create", map[string]any{"ageGroups": []any{}})
		require.NoError(t, err)
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 4)
		assert.Equal(t, []string{"name", "startDate", "endDate", "totalQuota"}, res.Errors.Fields())
		for _, e := range res.Errors {
			assert.Equal(t, validator.CodeRequired, e.Code)
		}
	})

	t.Run("blank strings count as missing", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["name"] = "   "
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.Path{"name"}, res.Errors[0].Path)
		assert.Equal(t, validator.CodeRequired, res.Errors[0].Code)
	})

	t.Run("every failing rule of a field is reported", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["totalQuota"] = 0.5
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		assert.Equal(t, []string{validator.CodeMin, validator.CodeInteger}, codes(res.Errors))
	})

	t.Run("numeric strings are type errors", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["totalQuota"] = "100"
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeType, res.Errors[0].Code)
	})

	t.Run("nested paths carry the element index", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["ageGroups"] = []any{
			map[string]any{"name": "small", "quota": 40},
			map[string]any{"name": "big", "quota": "x"},
		}
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1, "sum check is skipped while a part is invalid")
		assert.Equal(t, validator.Path{"ageGroups", "1", "quota"}, res.Errors[0].Path)
		assert.Equal(t, "ageGroups.1.quota", res.Errors[0].Path.String())
		assert.Equal(t, validator.CodeType, res.Errors[0].Code)
	})

	t.Run("unknown schema is structural", func(t *testing.T) {
		t.Parallel()
		res, err := eng.Validate(ctx, "plan", "archive", validPlan())
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, schema.IsStructuralError(err))
		assert.ErrorIs(t, err, schema.ErrUnknownSchema)
	})

	t.Run("result serializes to the public shape", func(t *testing.T) {
		t.Parallel()
		res, err := eng.Validate(ctx, "plan", "create", map[string]any{
			"startDate": "2024-03-01", "endDate": "2024-06-30", "totalQuota": 10,
		}, engine.WithLocale("en"))
		require.NoError(t, err)

		raw, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"valid": false,
			"value": {"startDate": "2024-03-01", "endDate": "2024-06-30", "totalQuota": 10},
			"errors": [{"path": ["name"], "code": "required", "message": "name is required"}],
			"failures": []
		}`, string(raw))
	})
}

func TestValidate_CrossFields(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	t.Run("end date before start date", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["startDate"] = "2024-03-31"
		in["endDate"] = "2024-03-01"
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeDateOrder, res.Errors[0].Code)
		assert.Equal(t, validator.Path{"endDate"}, res.Errors[0].Path)
	})

	t.Run("quota sum exceeded", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["ageGroups"] = []any{
			map[string]any{"name": "a", "quota": 60},
			map[string]any{"name": "b", "quota": 60},
		}
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		require.Len(t, res.Errors.ByCode(validator.CodeSumExceeded), 1)
		assert.Equal(t, validator.Path{"ageGroups"}, res.Errors[0].Path)
	})

	t.Run("quota sum at the limit", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["ageGroups"] = []any{
			map[string]any{"name": "a", "quota": 40},
			map[string]any{"name": "b", "quota": 60},
		}
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("element scoped min max", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["ageGroups"] = []any{
			map[string]any{"name": "a", "quota": 10, "minAge": 6, "maxAge": 3},
		}
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.CodeRangeOrder, res.Errors[0].Code)
		assert.Equal(t, validator.Path{"ageGroups", "0", "maxAge"}, res.Errors[0].Path)
	})

	t.Run("skipped when an operand is invalid", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["startDate"] = "2024-13-40"
		in["endDate"] = "2024-01-01"
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		assert.Equal(t, []string{validator.CodeDateFormat}, codes(res.Errors))
	})
}

func TestValidate_Conditionals(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	t.Run("cancelled requires a reason", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["status"] = "cancelled"
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, validator.Path{"reason"}, res.Errors[0].Path)
		assert.Equal(t, validator.CodeRequired, res.Errors[0].Code)
	})

	t.Run("then rules constrain a present value", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["status"] = "cancelled"
		in["reason"] = "no"
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		assert.Equal(t, []string{validator.CodeMinLength}, codes(res.Errors))
	})

	t.Run("predicate does not hold", func(t *testing.T) {
		t.Parallel()
		res, err := eng.Validate(ctx, "plan", "create", validPlan())
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("invalid trigger skips the rule", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["status"] = 3
		res, err := eng.Validate(ctx, "plan", "create", in)
		require.NoError(t, err)
		assert.Equal(t, []string{validator.CodeType}, codes(res.Errors))
	})
}

func TestValidate_Transitions(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		from  string
		to    string
		valid bool
	}{
		{"draft to active", "draft", "active", true},
		{"explicit identity", "active", "active", true},
		{"completed to draft", "completed", "draft", false},
		{"cancelled is terminal", "cancelled", "cancelled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := validPlan()
			in["status"] = tt.to
			res, err := eng.Validate(ctx, "plan", "update", in,
				engine.WithPrior(map[string]any{"status": " " + tt.from}),
				engine.WithLocale("en"),
			)
			require.NoError(t, err)
			if tt.valid {
				assert.True(t, res.Valid, res.Errors)
				return
			}
			if tt.to == "cancelled" {
				// reason is required as well
				require.Len(t, res.Errors, 2)
			} else {
				require.Len(t, res.Errors, 1)
			}
			last := res.Errors[len(res.Errors)-1]
			assert.Equal(t, validator.CodeTransition, last.Code)
			assert.Equal(t, validator.Path{"status"}, last.Path)
			assert.Equal(t, "status cannot change from "+tt.from+" to "+tt.to, last.Message)
		})
	}

	t.Run("no prior state skips the check", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["status"] = "completed"
		res, err := eng.Validate(ctx, "plan", "update", in)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})
}

func TestValidate_Messages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	missingName := map[string]any{"startDate": "2024-03-01", "endDate": "2024-06-30", "totalQuota": 1}

	t.Run("chinese by default", func(t *testing.T) {
		t.Parallel()
		eng := newEngine(t)
		res, err := eng.Validate(ctx, "plan", "create", missingName)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "name为必填项", res.Errors[0].Message)
	})

	t.Run("field labels and locale matching", func(t *testing.T) {
		t.Parallel()
		labels := &i18n.MapAdapter{Data: map[string]map[string]any{
			"zh": {"fields": map[string]any{"name": "名称"}},
			"en": {"fields": map[string]any{"name": "Name"}},
		}}
		tr, err := i18n.NewTranslator(ctx, i18n.MultiAdapter{engine.Catalog(), labels})
		require.NoError(t, err)
		eng := newEngine(t, engine.WithTranslator(tr))

		res, err := eng.Validate(ctx, "plan", "create", missingName)
		require.NoError(t, err)
		assert.Equal(t, "名称为必填项", res.Errors[0].Message)

		res, err = eng.Validate(ctx, "plan", "create", missingName, engine.WithLocale("en-US"))
		require.NoError(t, err)
		assert.Equal(t, "Name is required", res.Errors[0].Message)

		assert.Equal(t, "名称为必填项", eng.Translate("zh-CN", res.Errors[0]).Message)
	})

	t.Run("unknown code falls back to the code", func(t *testing.T) {
		t.Parallel()
		reg := schema.NewRegistry()
		require.NoError(t, reg.Register("budget", "create", schema.NewEntity([]schema.Field{
			schema.Number("total", schema.Required()),
			schema.Map("allocated", schema.Number("channel")),
		}, schema.WithCrossFields(schema.SumAtMost("allocated.*", "total", "budget.exceeded")))))
		eng, err := engine.New(reg)
		require.NoError(t, err)

		res, err := eng.Validate(ctx, "budget", "create", map[string]any{
			"total":     10000,
			"allocated": map[string]any{"email": 6000, "sms": 5000},
		})
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "budget.exceeded", res.Errors[0].Code)
		assert.Equal(t, "budget.exceeded", res.Errors[0].Message)
	})

	t.Run("without translator keeps built-in messages", func(t *testing.T) {
		t.Parallel()
		eng := newEngine(t, engine.WithTranslator(nil))
		res, err := eng.Validate(ctx, "plan", "create", missingName)
		require.NoError(t, err)
		assert.Equal(t, "field is required", res.Errors[0].Message)
	})
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)

	raw := map[string]any{
		"name":         "  Spring intake  ",
		"startDate":    "２０２４-03-01",
		"contactEmail": "  John.Doe@Example.COM ",
		"contactPhone": "+86 138-0013-8000",
		"totalQuota":   int64(100),
		"unknown":      "dropped",
		"reason":       "   ",
		"tags":         []any{"a", " a", "", "b", nil, "b"},
		"ageGroups": []any{
			nil,
			map[string]any{"name": " small ", "quota": json.Number("5"), "extra": true},
		},
	}

	got, err := eng.Sanitize("plan", "create", raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":         "Spring intake",
		"startDate":    "2024-03-01",
		"contactEmail": "john.doe@example.com",
		"contactPhone": "8613800138000",
		"totalQuota":   float64(100),
		"tags":         []any{"a", "b"},
		"ageGroups": []any{
			map[string]any{"name": "small", "quota": float64(5)},
		},
	}, got)

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		again, err := eng.Sanitize("plan", "create", got)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})

	t.Run("idempotent on wide and decomposed input", func(t *testing.T) {
		t.Parallel()
		inputs := []map[string]any{
			{"name": "ﾊﾟﾝﾀﾞ組", "startDate": "ｶﾞ２０２４", "contactEmail": "ｶﾞ@example.com", "contactPhone": "１３８ｶﾞ"},
			{"name": "e\u0301cole ", "startDate": "\u3000２０２４－０３－０１", "contactEmail": "Ａ\u0301＠Ｂ．com", "tags": []any{"ﾀﾞ", "タ\u3099"}},
			{"name": " \u0301", "contactEmail": " ..ｶﾞ..@x.com", "ageGroups": []any{map[string]any{"name": "ｶﾞ", "quota": "ｶﾞ"}}},
		}
		for _, in := range inputs {
			once, err := eng.Sanitize("plan", "create", in)
			require.NoError(t, err)
			twice, err := eng.Sanitize("plan", "create", once)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "input %v", in)
		}
	})

	t.Run("input is not modified", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "  Spring intake  ", raw["name"])
		assert.Contains(t, raw, "unknown")
	})

	t.Run("result value is the sanitized input", func(t *testing.T) {
		t.Parallel()
		in := validPlan()
		in["name"] = "  Spring intake "
		res, err := eng.Validate(context.Background(), "plan", "create", in)
		require.NoError(t, err)
		require.True(t, res.Valid)
		want, err := eng.Sanitize("plan", "create", in)
		require.NoError(t, err)
		assert.Equal(t, want, res.Value)
		assert.Equal(t, "Spring intake", res.Value["name"])
	})

	t.Run("unknown schema", func(t *testing.T) {
		t.Parallel()
		_, err := eng.Sanitize("nope", "create", raw)
		assert.True(t, schema.IsStructuralError(err))
	})
}

func TestValidateLogsSummary(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))
	eng := newEngine(t, engine.WithLogger(log))

	_, err := eng.Validate(context.Background(), "plan", "create", map[string]any{}, engine.WithLocale("en"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	assert.Equal(t, "validated", rec["msg"])
	assert.Equal(t, "en", rec["locale"])
	assert.NotEmpty(t, rec["call_id"])

	result, ok := rec["result"].(map[string]any)
	require.True(t, ok, "result group missing: %v", rec)
	assert.Equal(t, false, result["valid"])
	assert.Equal(t, float64(4), result["violations"])
}

func TestMetrics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	eng := newEngine(t, engine.WithMetrics(metrics.New(metrics.DefaultConfig(), reg)))
	ctx := context.Background()

	_, err := eng.Validate(ctx, "plan", "create", validPlan())
	require.NoError(t, err)
	_, err = eng.Validate(ctx, "plan", "create", map[string]any{})
	require.NoError(t, err)
	_, err = eng.Validate(ctx, "plan", "missing", nil)
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "kinderkit_engine_validations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "valid, invalid and structural outcomes")

	count, err = testutil.GatherAndCount(reg, "kinderkit_engine_violations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "only required violations were recorded")
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil registry", func(t *testing.T) {
		t.Parallel()
		_, err := engine.New(nil)
		assert.ErrorIs(t, err, engine.ErrNilRegistry)
	})

	t.Run("seals the registry", func(t *testing.T) {
		t.Parallel()
		reg := newRegistry(t)
		_, err := engine.New(reg)
		require.NoError(t, err)
		assert.True(t, reg.Sealed())
		assert.Error(t, reg.Register("plan", "query", planEntity()))
	})

	t.Run("required hooks must be configured", func(t *testing.T) {
		t.Parallel()
		_, err := engine.New(newRegistry(t), engine.WithRequiredHooks())
		require.Error(t, err)
		assert.True(t, schema.IsStructuralError(err))
		assert.ErrorIs(t, err, engine.ErrMissingHook)

		pass := engine.HookFunc(func(context.Context, any, *engine.Context) (*validator.ValidationError, error) {
			return nil, nil
		})
		_, err = engine.New(newRegistry(t), engine.WithRequiredHooks(), engine.WithHooks(engine.Hooks{
			"plan.name.unique":    pass,
			"plan.quota.capacity": pass,
		}))
		assert.NoError(t, err)
	})

	t.Run("nil hook", func(t *testing.T) {
		t.Parallel()
		_, err := engine.New(newRegistry(t), engine.WithHook("plan.name.unique", nil))
		assert.ErrorIs(t, err, engine.ErrNilHook)
	})

	t.Run("default config", func(t *testing.T) {
		t.Parallel()
		cfg := engine.DefaultConfig()
		assert.Equal(t, "zh", cfg.DefaultLocale)
		assert.Equal(t, "en", cfg.FallbackLocale)
		assert.Equal(t, engine.HookModeConcurrent, cfg.HookMode)
	})
}
