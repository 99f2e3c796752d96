package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
	"volunteerhub/internal/validation"
)

var (
	matchAll  clause.Expression = clause.Expr{SQL: "1 = 1"}
	matchNone clause.Expression = clause.Expr{SQL: "1 = 0"}
)

// conditions collects predicates that are joined with AND.
type conditions []clause.Expression

func (c *conditions) add(exprs ...clause.Expression) {
	for _, e := range exprs {
		if e != nil {
			*c = append(*c, e)
		}
	}
}

func (c conditions) and() clause.Expression {
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	}
	return clause.AndConditions{Exprs: c}
}

// combine builds the AND / OR / NOT branches of a filter tree.
func combine[W any](and, or, not []W, build func(*W) clause.Expression) []clause.Expression {
	var out conditions
	for i := range and {
		out.add(build(&and[i]))
	}
	if or != nil {
		alts := make([]clause.Expression, 0, len(or))
		for i := range or {
			e := build(&or[i])
			if e == nil {
				e = matchAll
			}
			alts = append(alts, e)
		}
		switch len(alts) {
		case 0:
			out.add(matchNone)
		case 1:
			out.add(alts[0])
		default:
			out.add(clause.OrConditions{Exprs: alts})
		}
	}
	for i := range not {
		if e := build(&not[i]); e != nil {
			out.add(negate(e))
		} else {
			out.add(matchNone)
		}
	}
	return out
}

func negate(e clause.Expression) clause.Expression {
	return clause.Expr{SQL: "NOT (?)", Vars: []interface{}{e}, WithoutParentheses: true}
}

func valueFilter[T any](column string, f *validation.Filter[T]) clause.Expression {
	if f == nil {
		return nil
	}
	col := clause.Column{Name: column}
	var c conditions
	if f.Equals != nil {
		c.add(clause.Eq{Column: col, Value: *f.Equals})
	}
	if f.In != nil {
		c.add(inList(col, values(f.In)))
	}
	if len(f.NotIn) > 0 {
		c.add(clause.Not(clause.IN{Column: col, Values: values(f.NotIn)}))
	}
	if f.Lt != nil {
		c.add(clause.Lt{Column: col, Value: *f.Lt})
	}
	if f.Lte != nil {
		c.add(clause.Lte{Column: col, Value: *f.Lte})
	}
	if f.Gt != nil {
		c.add(clause.Gt{Column: col, Value: *f.Gt})
	}
	if f.Gte != nil {
		c.add(clause.Gte{Column: col, Value: *f.Gte})
	}
	if f.IsNull != nil {
		c.add(nullCheck(col, *f.IsNull))
	}
	if f.Not != nil {
		if e := valueFilter(column, f.Not); e != nil {
			c.add(negate(e))
		}
	}
	return c.and()
}

func stringFilter(column string, f *validation.StringFilter) clause.Expression {
	if f == nil {
		return nil
	}
	col := clause.Column{Name: column}
	fold := f.Insensitive()
	var c conditions
	if f.Equals != nil {
		if fold {
			c.add(clause.Expr{SQL: "LOWER(?) = LOWER(?)", Vars: []interface{}{col, *f.Equals}})
		} else {
			c.add(clause.Eq{Column: col, Value: *f.Equals})
		}
	}
	if f.In != nil {
		c.add(inList(col, values(f.In)))
	}
	if len(f.NotIn) > 0 {
		c.add(clause.Not(clause.IN{Column: col, Values: values(f.NotIn)}))
	}
	if f.Lt != nil {
		c.add(clause.Lt{Column: col, Value: *f.Lt})
	}
	if f.Lte != nil {
		c.add(clause.Lte{Column: col, Value: *f.Lte})
	}
	if f.Gt != nil {
		c.add(clause.Gt{Column: col, Value: *f.Gt})
	}
	if f.Gte != nil {
		c.add(clause.Gte{Column: col, Value: *f.Gte})
	}
	if f.Contains != nil {
		c.add(like(col, "%"+escapeLike(*f.Contains)+"%", fold))
	}
	if f.StartsWith != nil {
		c.add(like(col, escapeLike(*f.StartsWith)+"%", fold))
	}
	if f.EndsWith != nil {
		c.add(like(col, "%"+escapeLike(*f.EndsWith), fold))
	}
	if f.IsNull != nil {
		c.add(nullCheck(col, *f.IsNull))
	}
	if f.Not != nil {
		not := *f.Not
		if not.Mode == "" {
			not.Mode = f.Mode
		}
		if e := stringFilter(column, &not); e != nil {
			c.add(negate(e))
		}
	}
	return c.and()
}

func like(col clause.Column, pattern string, fold bool) clause.Expression {
	if fold {
		return clause.Expr{SQL: "LOWER(?) LIKE LOWER(?) ESCAPE '!'", Vars: []interface{}{col, pattern}}
	}
	return clause.Expr{SQL: "? LIKE ? ESCAPE '!'", Vars: []interface{}{col, pattern}}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullCheck(col clause.Column, isNull bool) clause.Expression {
	if isNull {
		return clause.Eq{Column: col, Value: nil}
	}
	return clause.Neq{Column: col, Value: nil}
}

func inList(col clause.Column, vals []interface{}) clause.Expression {
	if len(vals) == 0 {
		return matchNone
	}
	return clause.IN{Column: col, Values: vals}
}

func values[T any](in []T) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// applyWhere adds a filter expression to the query.
func applyWhere(q *gorm.DB, expr clause.Expression) *gorm.DB {
	if expr == nil {
		return q
	}
	return q.Where(expr)
}

// applyOrder adds the ordering to the query, with the primary key as the
// final tie breaker so pages are stable.
func applyOrder(q *gorm.DB, orderBy []validation.OrderBy, columns validation.Sortable, primaryKey string) *gorm.DB {
	parts := make([]string, 0, len(orderBy)*2+1)
	vars := make([]interface{}, 0, len(orderBy)*2+1)
	for _, o := range orderBy {
		column := columns.Column(o.Field)
		if column == "" {
			continue
		}
		col := clause.Column{Name: column}
		switch o.Nulls {
		case model.NullsFirst:
			parts = append(parts, "CASE WHEN ? IS NULL THEN 0 ELSE 1 END")
			vars = append(vars, col)
		case model.NullsLast:
			parts = append(parts, "CASE WHEN ? IS NULL THEN 1 ELSE 0 END")
			vars = append(vars, col)
		}
		dir := "? ASC"
		if o.Desc() {
			dir = "? DESC"
		}
		parts = append(parts, dir)
		vars = append(vars, col)
	}
	parts = append(parts, "? ASC")
	vars = append(vars, clause.Column{Name: primaryKey})

	return q.Clauses(clause.OrderBy{Expression: clause.Expr{
		SQL:                strings.Join(parts, ", "),
		Vars:               vars,
		WithoutParentheses: true,
	}})
}

// page applies ordering and the take / skip window of a list view.
func page[W any](q *gorm.DB, args validation.FindManyArgs[W], columns validation.Sortable, primaryKey string) *gorm.DB {
	q = applyOrder(q, args.OrderBy, columns, primaryKey)
	q = q.Limit(args.Limit())
	if args.Skip > 0 {
		q = q.Offset(args.Skip)
	}
	return q
}
