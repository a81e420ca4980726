package schemas

import (
	"slices"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/statemachine"
)

// Operation names shared by most entities.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpQuery  = "query"
	OpStats  = "stats"
)

var (
	genders       = []string{"male", "female"}
	ageGroups     = []string{"toddler", "small", "middle", "large"}
	relationships = []string{"father", "mother", "grandfather", "grandmother", "guardian", "other"}
)

const (
	idCardPattern       = `^\d{17}[\dXx]$`
	academicYearPattern = `^\d{4}-\d{4}$`
	codePattern         = `^[A-Z0-9-]{3,20}$`
)

func id(name string, rules ...schema.Rule) schema.Field {
	return schema.String(name, slices.Concat(rules, []schema.Rule{schema.UUID()})...)
}

func requiredID(name string) schema.Field {
	return id(name, schema.Required())
}

func personName(name string, rules ...schema.Rule) schema.Field {
	return schema.String(name, slices.Concat(rules, []schema.Rule{schema.MinLength(2), schema.MaxLength(50)})...)
}

func notes(name string, max int) schema.Field {
	return schema.String(name, schema.MaxLength(max))
}

func address(rules ...schema.Rule) schema.Field {
	return schema.Object("address", []schema.Field{
		schema.String("province", schema.Required(), schema.MaxLength(50)),
		schema.String("city", schema.Required(), schema.MaxLength(50)),
		schema.String("district", schema.MaxLength(50)),
		schema.String("detail", schema.Required(), schema.MaxLength(200)),
	}, rules...)
}

// queryFields are the paging and sorting parameters accepted by every query
// operation, followed by the entity's own filters.
func queryFields(filters ...schema.Field) []schema.Field {
	return slices.Concat([]schema.Field{
		schema.Integer("page", schema.Min(1)),
		schema.Integer("pageSize", schema.Range(1, 100)),
		schema.String("keyword", schema.MaxLength(100)),
		schema.String("sortBy", schema.Pattern(`^[A-Za-z_]{1,50}$`)),
		schema.String("sortOrder", schema.Enum("asc", "desc")),
	}, filters)
}

// updateFields prefixes an optional copy of fields with the required id of
// the record being updated.
func updateFields(fields []schema.Field) []schema.Field {
	out := make([]schema.Field, 0, len(fields)+1)
	out = append(out, requiredID("id"))
	for _, f := range fields {
		out = append(out, schema.Optional(f))
	}
	return out
}

// statusField declares a status enum holding exactly the states of m.
func statusField(m *statemachine.Matrix, rules ...schema.Rule) schema.Field {
	states := m.States()
	values := make([]string, len(states))
	for i, s := range states {
		values[i] = string(s)
	}
	return schema.String("status", slices.Concat(rules, []schema.Rule{schema.Enum(values...)})...)
}
