package repository

import (
	"reflect"
	"slices"
	"strings"
)

type column struct {
	name  string
	table string
	alias string
}

// expr renders the column for a SELECT list.
func (c column) expr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return c.table + "." + c.name + " AS " + c.alias
	default:
		return c.table + "." + c.name
	}
}

// layout is what the repository learns from T once, at construction.
type layout struct {
	columns []column
	insert  []string
	join    string
}

type joiner interface {
	GetJoinQuery() string
}

func layoutOf[T any](table string) layout {
	var zero T

	l := layout{}
	l.columns, l.insert = walk(table, reflect.TypeOf(zero))

	if j, ok := any(zero).(joiner); ok {
		l.join = j.GetJoinQuery()
	}

	return l
}

// selectList renders the requested columns, or every column when none are named.
func (l layout) selectList(only []string) string {
	exprs := make([]string, 0, len(l.columns))

	for _, col := range l.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.expr())
	}

	return strings.Join(exprs, ", ")
}

// walk collects columns from db tags, descending into embedded structs. A table tag moves
// the column to a joined table and keeps it out of INSERTs; a column tag selects a
// differently named source column aliased to the db tag.
func walk(table string, typ reflect.Type) (columns []column, insert []string) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := walk(table, field.Type)
			columns = append(columns, nested...)
			insert = append(insert, nestedInsert...)
		}

		name := field.Tag.Get("db")
		if name == "" {
			continue
		}

		source := field.Tag.Get("table")
		if source == "" || source == table {
			source = table
			insert = append(insert, name)
		}

		if src := field.Tag.Get("column"); src != "" {
			columns = append(columns, column{name: src, table: source, alias: name})
		} else {
			columns = append(columns, column{name: name, table: source})
		}
	}

	return columns, insert
}
