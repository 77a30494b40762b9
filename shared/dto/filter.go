package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq   = "eq"
	FilterOperatorLike = "like"
	FilterOperatorIn   = "in"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter is one named-parameter condition. ArgName overrides the parameter name when the
// column is also written by the same statement, e.g. the expected version of a CAS update.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the condition with sqlx named parameters. Unknown operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	name := f.argName()

	switch f.Operator {
	case FilterOperatorEq:
		return fmt.Sprintf("%s = :%s", f.column(), name), map[string]any{name: f.Value}
	case FilterOperatorLike:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s) ", f.column(), name), map[string]any{name: fmt.Sprintf("%%%v%%", f.Value)}
	case FilterOperatorIn:
		return f.inClause(name)
	default:
		return "", map[string]any{}
	}
}

// inClause expands a slice into one parameter per element; an empty slice matches nothing.
func (f *Filter) inClause(name string) (string, map[string]any) {
	args := map[string]any{}

	values := reflect.ValueOf(f.Value)
	if values.Kind() != reflect.Slice && values.Kind() != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s IN (:%s) ", f.column(), name), args
	}

	if values.Len() == 0 {
		return "1 = 0", args
	}

	params := make([]string, values.Len())

	for idx := range values.Len() {
		param := fmt.Sprintf("%s_%d", name, idx)
		args[param] = values.Index(idx).Interface()
		params[idx] = ":" + param
	}

	return fmt.Sprintf("%s IN (%s) ", f.column(), strings.Join(params, ", ")), args
}

// FilterGroup joins Filter and nested FilterGroup values with Operator, AND when unset.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch typed := item.(type) {
		case Filter:
			where, arg = typed.GetWhereClause()
		case FilterGroup:
			where, arg = typed.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+operator+" ")), args
}
