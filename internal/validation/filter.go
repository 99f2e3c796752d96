package validation

import (
	"bytes"
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"volunteerhub/internal/model"
)

// Filter is a predicate over a single comparable column. A bare JSON
// literal decodes as Equals.
type Filter[T any] struct {
	Equals *T         `json:"equals,omitempty"`
	In     []T        `json:"in,omitempty"`
	NotIn  []T        `json:"notIn,omitempty"`
	Lt     *T         `json:"lt,omitempty"`
	Lte    *T         `json:"lte,omitempty"`
	Gt     *T         `json:"gt,omitempty"`
	Gte    *T         `json:"gte,omitempty"`
	Not    *Filter[T] `json:"not,omitempty"`
	IsNull *bool      `json:"isNull,omitempty"`
}

type filterObject[T any] Filter[T]

// Eq returns a filter matching v.
func Eq[T any](v T) *Filter[T] {
	return &Filter[T]{Equals: &v}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Filter[T]) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = Filter[T]{Equals: &v}
		return nil
	}
	var obj filterObject[T]
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*f = Filter[T](obj)
	return nil
}

// StringFilter is a predicate over a text column.
type StringFilter struct {
	Equals     *string         `json:"equals,omitempty"`
	In         []string        `json:"in,omitempty"`
	NotIn      []string        `json:"notIn,omitempty"`
	Lt         *string         `json:"lt,omitempty"`
	Lte        *string         `json:"lte,omitempty"`
	Gt         *string         `json:"gt,omitempty"`
	Gte        *string         `json:"gte,omitempty"`
	Contains   *string         `json:"contains,omitempty"`
	StartsWith *string         `json:"startsWith,omitempty"`
	EndsWith   *string         `json:"endsWith,omitempty"`
	Mode       model.QueryMode `json:"mode,omitempty" validate:"omitempty,oneof=default insensitive"`
	Not        *StringFilter   `json:"not,omitempty"`
	IsNull     *bool           `json:"isNull,omitempty"`
}

// StrEq returns a filter matching s exactly.
func StrEq(s string) *StringFilter {
	return &StringFilter{Equals: &s}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *StringFilter) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = StringFilter{Equals: &s}
		return nil
	}
	type plain StringFilter
	var obj plain
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*f = StringFilter(obj)
	return nil
}

// Insensitive reports whether comparisons ignore case.
func (f *StringFilter) Insensitive() bool {
	return f.Mode == model.QueryModeInsensitive
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

func approvalFilterRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(Filter[model.ApprovalStatus])
	check := func(v model.ApprovalStatus, name string) {
		if !v.Valid() {
			sl.ReportError(v, name, name, "approval_status", "")
		}
	}
	for _, p := range []struct {
		v    *model.ApprovalStatus
		name string
	}{{f.Equals, "equals"}, {f.Lt, "lt"}, {f.Lte, "lte"}, {f.Gt, "gt"}, {f.Gte, "gte"}} {
		if p.v != nil {
			check(*p.v, p.name)
		}
	}
	for _, v := range f.In {
		check(v, "in")
	}
	for _, v := range f.NotIn {
		check(v, "notIn")
	}
}
