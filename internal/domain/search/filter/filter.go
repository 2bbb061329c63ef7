// Package filter models recruiter-facing metadata constraints as a closed
// set of predicates. Unsupported operators and operand/field type mismatches
// are rejected at construction time, never inside query execution.
package filter

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/talentgrid/resumatch/internal/domain"
)

// Metadata field names of the resume schema. The schema is closed: filters
// on any other field fail construction.
const (
	FieldRole   = "role"
	FieldYears  = "years"
	FieldSkills = "skills"
)

// Op enumerates the supported predicate operators.
type Op int

const (
	// OpEq requires exact equality (case-sensitive string or numeric).
	OpEq Op = iota
	// OpGte requires a numeric field value >= the operand.
	OpGte
	// OpLte requires a numeric field value <= the operand.
	OpLte
	// OpIn requires a set-valued field to contain at least one operand
	// element (OR over the list, not subset).
	OpIn
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "$eq"
	case OpGte:
		return "$gte"
	case OpLte:
		return "$lte"
	case OpIn:
		return "$in"
	}
	return "unknown"
}

// Condition is a single predicate on one metadata field.
type Condition struct {
	field string
	op    Op
	str   string   // OpEq on role
	num   float64  // OpEq/OpGte/OpLte on years
	list  []string // OpIn on skills
}

// NewRoleEq creates an exact-match condition on the role field.
func NewRoleEq(role string) (Condition, error) {
	if role == "" {
		return Condition{}, fmt.Errorf("role value is required: %w", domain.ErrInvalidFilter)
	}
	return Condition{field: FieldRole, op: OpEq, str: role}, nil
}

// NewYears creates a numeric condition on the years field. Only OpEq, OpGte
// and OpLte are meaningful for a scalar numeric.
func NewYears(op Op, n float64) (Condition, error) {
	switch op {
	case OpEq, OpGte, OpLte:
	default:
		return Condition{}, fmt.Errorf("%s not supported on %q: %w", op, FieldYears, domain.ErrInvalidFilter)
	}
	return Condition{field: FieldYears, op: op, num: n}, nil
}

// NewSkillsIn creates a membership condition on the skills field. An empty
// list is legal and matches nothing: no value satisfies an empty OR set.
func NewSkillsIn(skills []string) Condition {
	return Condition{field: FieldSkills, op: OpIn, list: skills}
}

// Field returns the metadata field name.
func (c Condition) Field() string { return c.field }

// Operator returns the predicate operator.
func (c Condition) Operator() Op { return c.op }

// Str returns the string operand (OpEq on role).
func (c Condition) Str() string { return c.str }

// Num returns the numeric operand (years conditions).
func (c Condition) Num() float64 { return c.num }

// List returns the membership operand (OpIn on skills).
func (c Condition) List() []string { return c.list }

// Expression is an AND over per-field conditions. Nested OR/AND groups are
// deliberately unsupported.
type Expression struct {
	conditions []Condition
}

// NewExpression creates an Expression from conditions.
func NewExpression(conditions ...Condition) Expression {
	return Expression{conditions: conditions}
}

// Conditions returns the conditions in stable order.
func (e Expression) Conditions() []Condition { return e.conditions }

// IsEmpty reports whether the expression has no conditions (match all).
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// MatchesNothing reports whether the expression can never match, i.e. it
// contains an $in with an empty candidate list.
func (e Expression) MatchesNothing() bool {
	for _, c := range e.conditions {
		if c.op == OpIn && len(c.list) == 0 {
			return true
		}
	}
	return false
}

// Matches evaluates the expression against projected resume metadata.
func (e Expression) Matches(role string, years float64, skills []string) bool {
	for _, c := range e.conditions {
		if !c.matches(role, years, skills) {
			return false
		}
	}
	return true
}

func (c Condition) matches(role string, years float64, skills []string) bool {
	switch c.field {
	case FieldRole:
		return role == c.str
	case FieldYears:
		switch c.op {
		case OpEq:
			return years == c.num
		case OpGte:
			return years >= c.num
		case OpLte:
			return years <= c.num
		}
	case FieldSkills:
		for _, want := range c.list {
			for _, have := range skills {
				if have == want {
					return true
				}
			}
		}
		return false
	}
	return false
}

// FromMap parses the recruiter-facing filter form: field name mapped to a
// bare scalar (implicit $eq) or an operator object, e.g.
//
//	{"years": {"$gte": 5}, "skills": {"$in": ["Rust"]}, "role": "Backend Developer"}
//
// Fields combine with AND. A nil or empty map means match all.
func FromMap(m map[string]any) (Expression, error) {
	if len(m) == 0 {
		return Expression{}, nil
	}

	// Stable condition order for reproducible store queries.
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	conditions := make([]Condition, 0, len(m))
	for _, f := range fields {
		parsed, err := parseField(f, m[f])
		if err != nil {
			return Expression{}, err
		}
		conditions = append(conditions, parsed...)
	}
	return NewExpression(conditions...), nil
}

func parseField(field string, raw any) ([]Condition, error) {
	switch field {
	case FieldRole, FieldYears, FieldSkills:
	default:
		return nil, fmt.Errorf("unknown filter field %q: %w", field, domain.ErrInvalidFilter)
	}

	ops, isObject := raw.(map[string]any)
	if !isObject {
		c, err := parseImplicitEq(field, raw)
		if err != nil {
			return nil, err
		}
		return []Condition{c}, nil
	}

	if len(ops) == 0 {
		return nil, fmt.Errorf("empty operator object for %q: %w", field, domain.ErrInvalidFilter)
	}

	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)

	conditions := make([]Condition, 0, len(ops))
	for _, name := range names {
		c, err := parseOperator(field, name, ops[name])
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

func parseImplicitEq(field string, raw any) (Condition, error) {
	switch field {
	case FieldRole:
		s, ok := raw.(string)
		if !ok {
			return Condition{}, fmt.Errorf("role must be a string, got %T: %w", raw, domain.ErrInvalidFilter)
		}
		return NewRoleEq(s)
	case FieldYears:
		n, ok := asNumber(raw)
		if !ok {
			return Condition{}, fmt.Errorf("years must be numeric, got %T: %w", raw, domain.ErrInvalidFilter)
		}
		return NewYears(OpEq, n)
	default:
		// skills is set-valued: bare equality against a set is undefined.
		return Condition{}, fmt.Errorf("$eq not supported on %q (use $in): %w", field, domain.ErrInvalidFilter)
	}
}

func parseOperator(field, name string, operand any) (Condition, error) {
	switch name {
	case "$eq":
		return parseImplicitEq(field, operand)
	case "$gte", "$lte":
		if field != FieldYears {
			return Condition{}, fmt.Errorf("%s only supported on %q: %w", name, FieldYears, domain.ErrInvalidFilter)
		}
		n, ok := asNumber(operand)
		if !ok {
			return Condition{}, fmt.Errorf("%s operand must be numeric, got %T: %w", name, operand, domain.ErrInvalidFilter)
		}
		op := OpGte
		if name == "$lte" {
			op = OpLte
		}
		return NewYears(op, n)
	case "$in":
		if field != FieldSkills {
			// $in against a scalar field is undefined by the schema.
			return Condition{}, fmt.Errorf("$in only supported on %q: %w", FieldSkills, domain.ErrInvalidFilter)
		}
		list, err := asStringList(operand)
		if err != nil {
			return Condition{}, err
		}
		return NewSkillsIn(list), nil
	default:
		return Condition{}, fmt.Errorf("unsupported operator %q: %w", name, domain.ErrInvalidFilter)
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func asStringList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("$in element must be a string, got %T: %w", item, domain.ErrInvalidFilter)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("$in operand must be a list, got %T: %w", v, domain.ErrInvalidFilter)
	}
}
