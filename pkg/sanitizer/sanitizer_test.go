package sanitizer_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/kinderkit/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		transforms []func(string) string
		expected   string
	}{
		{
			name:       "applies single transform",
			input:      "  hello  ",
			transforms: []func(string) string{sanitizer.Trim},
			expected:   "hello",
		},
		{
			name:       "applies transforms in sequence",
			input:      "  HELLO  ",
			transforms: []func(string) string{sanitizer.Trim, sanitizer.ToLower},
			expected:   "hello",
		},
		{
			name:     "handles empty transforms",
			input:    "hello",
			expected: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.Apply(tt.input, tt.transforms...))
		})
	}

	t.Run("compose is reusable", func(t *testing.T) {
		clean := sanitizer.Compose(sanitizer.Trim, sanitizer.ToLower)
		assert.Equal(t, "a", clean(" A "))
		assert.Equal(t, "b", clean("B"))
	})
}

func TestStrings(t *testing.T) {
	t.Parallel()

	t.Run("fold width", func(t *testing.T) {
		assert.Equal(t, "123@ex.com", sanitizer.FoldWidth("１２３＠ｅｘ．ｃｏｍ"))
		assert.Equal(t, "2024-09-01", sanitizer.FoldWidth("２０２４－０９－０１"))
		assert.Equal(t, "阳光幼儿园", sanitizer.FoldWidth("阳光幼儿园"))
	})

	t.Run("nfc", func(t *testing.T) {
		assert.Equal(t, "\u00e9", sanitizer.NormalizeUnicode("e\u0301"))
	})

	t.Run("text pipeline", func(t *testing.T) {
		assert.Equal(t, "阳光 幼儿园", sanitizer.Text("  阳光 幼儿园\t"))
	})

	t.Run("token pipeline", func(t *testing.T) {
		assert.Equal(t, "KG-001", sanitizer.Token("　ＫＧ-００１ "))
	})

	t.Run("extra whitespace", func(t *testing.T) {
		assert.Equal(t, "a b c", sanitizer.RemoveExtraWhitespace("  a \n b\t\tc "))
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	t.Run("email", func(t *testing.T) {
		assert.Equal(t, "john.doe@example.com", sanitizer.NormalizeEmail("  John..Doe@Example.COM "))
		assert.Equal(t, "a@b.com", sanitizer.NormalizeEmail("Ａ＠ｂ．ｃｏｍ"))
		assert.Equal(t, "not-an-email", sanitizer.NormalizeEmail("Not-An-Email"))
	})

	t.Run("phone", func(t *testing.T) {
		assert.Equal(t, "8613800138000", sanitizer.NormalizePhone("+86 138-0013-8000"))
		assert.Equal(t, "13800138000", sanitizer.NormalizePhone("１３８００１３８０００"))
	})
}

func TestPipelinesAreIdempotent(t *testing.T) {
	t.Parallel()

	pipelines := map[string]func(string) string{
		"text":  sanitizer.Text,
		"token": sanitizer.Token,
		"email": sanitizer.Email,
		"phone": sanitizer.NormalizePhone,
	}
	inputs := []string{
		"ｶﾞ",
		"ﾊﾟﾝﾀﾞ ｸﾗｽ",
		"ｶﾞ@example.com",
		"  ＫＧ－００１\u3000",
		"２０２４－０９－０１",
		"e\u0301cole@Example.COM",
		"\u3000阳光幼儿园 ",
		"１３８-0013 8000",
		"Ａ\u0301＠ｂ．ｃｏｍ",
		" \u0301",
	}

	for name, fn := range pipelines {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				once := fn(in)
				assert.Equal(t, once, fn(once), "input %q", in)
			}
		})
	}

	t.Run("half-width kana is composed", func(t *testing.T) {
		assert.Equal(t, "\u30ac", sanitizer.Token("ｶﾞ"))
		assert.Equal(t, "\u30ac@example.com", sanitizer.Email("ｶﾞ@example.com"))
	})
}

func TestCollections(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, sanitizer.FilterEmpty([]string{"a", " ", "", "b"}))
	assert.Equal(t, []int{1, 2, 3}, sanitizer.Deduplicate([]int{1, 2, 1, 3, 2}))

	t.Run("compact scalars", func(t *testing.T) {
		obj := map[string]any{"a": 1.0}
		got := sanitizer.CompactScalars([]any{"u1", "", nil, false, 0.0, "u2", "u1", obj, 1.0, true})
		assert.Equal(t, []any{"u1", "u2", obj, 1.0, true}, got)
	})

	t.Run("filter nil", func(t *testing.T) {
		obj := map[string]any{}
		assert.Equal(t, []any{obj}, sanitizer.FilterNil([]any{nil, obj, nil}))
	})

	t.Run("falsy", func(t *testing.T) {
		for _, v := range []any{nil, "", false, 0, 0.0, json.Number("0")} {
			assert.True(t, sanitizer.IsFalsy(v), "%#v", v)
		}
		for _, v := range []any{"0", true, 1, -1.5, []any{}} {
			assert.False(t, sanitizer.IsFalsy(v), "%#v", v)
		}
	})
}

func TestToFloat64(t *testing.T) {
	t.Parallel()

	for _, v := range []any{3, int8(3), int16(3), int32(3), int64(3), uint(3), uint8(3), uint16(3), uint32(3), uint64(3), float32(3), 3.0, json.Number("3")} {
		f, ok := sanitizer.ToFloat64(v)
		assert.True(t, ok, "%T", v)
		assert.Equal(t, 3.0, f, "%T", v)
	}

	for _, v := range []any{"3", nil, true, json.Number("x"), math.NaN(), math.Inf(1)} {
		_, ok := sanitizer.ToFloat64(v)
		assert.False(t, ok, "%#v", v)
	}
}
