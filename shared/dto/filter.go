package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq    = "eq"
	FilterOperatorNotEq = "not_eq"
	FilterOperatorLike  = "like"
	FilterIsNull        = "is_null"
	FilterIsNotNull     = "is_not_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:    "=",
	FilterOperatorNotEq: "!=",
}

// likeEscaper makes LIKE match the search text literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Clause is anything that renders to a named-parameter WHERE fragment.
type Clause interface {
	GetWhereClause() (string, map[string]any)
}

type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func (f Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

func (f Filter) GetWhereClause() (string, map[string]any) {
	column, argName := f.column(), f.argName()

	if comparison, ok := comparisons[f.Operator]; ok {
		return fmt.Sprintf("%s %s :%s", column, comparison, argName), map[string]any{argName: f.Value}
	}

	switch f.Operator {
	case FilterOperatorLike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf(`LOWER(%s) LIKE LOWER(:%s) ESCAPE '\' `, column, argName), map[string]any{argName: pattern}
	case FilterIsNull:
		return column + " IS NULL", map[string]any{}
	case FilterIsNotNull:
		return column + " IS NOT NULL", map[string]any{}
	default:
		return "", map[string]any{}
	}
}

// FilterGroup joins its clauses with Operator. Nested groups are parenthesised.
type FilterGroup struct {
	Filters  []Clause
	Operator string
}

func (f FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		where, arg := filter.GetWhereClause()
		if where == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, arg)
	}

	if len(parts) == 0 {
		return "", args
	}

	return "(" + strings.Join(parts, " "+f.Operator+" ") + ")", args
}
