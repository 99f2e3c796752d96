package validation

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "volunteerhub/internal/errors"
)

// IntUpdate is an update for an integer column: a bare literal sets the
// value, an object applies exactly one arithmetic operation.
type IntUpdate struct {
	Set       *int `json:"set,omitempty"`
	Increment *int `json:"increment,omitempty"`
	Decrement *int `json:"decrement,omitempty"`
	Multiply  *int `json:"multiply,omitempty"`
	Divide    *int `json:"divide,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *IntUpdate) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		var v int
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*u = IntUpdate{Set: &v}
		return nil
	}
	type plain IntUpdate
	var obj plain
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*u = IntUpdate(obj)
	return nil
}

func (u IntUpdate) operations() int {
	return countSet(u.Set != nil, u.Increment != nil, u.Decrement != nil, u.Multiply != nil, u.Divide != nil)
}

// Apply returns the value that results from applying u to cur. Results
// outside the int range are rejected with a ValidationError on field.
func (u IntUpdate) Apply(field string, cur int) (int, error) {
	switch {
	case u.Set != nil:
		return *u.Set, nil
	case u.Increment != nil:
		v := *u.Increment
		if (v > 0 && cur > math.MaxInt-v) || (v < 0 && cur < math.MinInt-v) {
			return cur, overflow(field)
		}
		return cur + v, nil
	case u.Decrement != nil:
		v := *u.Decrement
		if (v < 0 && cur > math.MaxInt+v) || (v > 0 && cur < math.MinInt+v) {
			return cur, overflow(field)
		}
		return cur - v, nil
	case u.Multiply != nil:
		v := *u.Multiply
		if cur == 0 || v == 0 {
			return 0, nil
		}
		r := cur * v
		if r/v != cur || (cur == -1 && v == math.MinInt) || (v == -1 && cur == math.MinInt) {
			return cur, overflow(field)
		}
		return r, nil
	case u.Divide != nil:
		if *u.Divide == 0 {
			return cur, apperrors.Invalid(field, "divide_by_zero", "cannot divide by zero")
		}
		if cur == math.MinInt && *u.Divide == -1 {
			return cur, overflow(field)
		}
		return cur / *u.Divide, nil
	}
	return cur, nil
}

func overflow(field string) error {
	return apperrors.Invalid(field, "overflow", "result is out of range")
}

// DecimalUpdate is IntUpdate for decimal columns.
type DecimalUpdate struct {
	Set       *decimal.Decimal `json:"set,omitempty"`
	Increment *decimal.Decimal `json:"increment,omitempty"`
	Decrement *decimal.Decimal `json:"decrement,omitempty"`
	Multiply  *decimal.Decimal `json:"multiply,omitempty"`
	Divide    *decimal.Decimal `json:"divide,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *DecimalUpdate) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		var v decimal.Decimal
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*u = DecimalUpdate{Set: &v}
		return nil
	}
	type plain DecimalUpdate
	var obj plain
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*u = DecimalUpdate(obj)
	return nil
}

func (u DecimalUpdate) operations() int {
	return countSet(u.Set != nil, u.Increment != nil, u.Decrement != nil, u.Multiply != nil, u.Divide != nil)
}

// Apply returns the value that results from applying u to cur.
func (u DecimalUpdate) Apply(cur decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case u.Set != nil:
		return *u.Set, nil
	case u.Increment != nil:
		return cur.Add(*u.Increment), nil
	case u.Decrement != nil:
		return cur.Sub(*u.Decrement), nil
	case u.Multiply != nil:
		return cur.Mul(*u.Multiply), nil
	case u.Divide != nil:
		if u.Divide.IsZero() {
			return cur, fmt.Errorf("divide by zero")
		}
		return cur.Div(*u.Divide), nil
	}
	return cur, nil
}

// StringListUpdate replaces a list column or appends to it.
type StringListUpdate struct {
	Set  []string `json:"set,omitempty"`
	Push []string `json:"push,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. A bare array replaces the list.
func (u *StringListUpdate) UnmarshalJSON(b []byte) error {
	if !isObject(b) {
		var v []string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if v == nil {
			v = []string{}
		}
		*u = StringListUpdate{Set: v}
		return nil
	}
	type plain StringListUpdate
	var obj plain
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*u = StringListUpdate(obj)
	return nil
}

// Apply returns the list that results from applying u to cur.
func (u StringListUpdate) Apply(cur []string) []string {
	if u.Set != nil {
		return append([]string{}, u.Set...)
	}
	out := make([]string, 0, len(cur)+len(u.Push))
	out = append(out, cur...)
	return append(out, u.Push...)
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func intUpdateRules(sl validator.StructLevel) {
	u := sl.Current().Interface().(IntUpdate)
	if u.operations() != 1 {
		sl.ReportError(u, "operation", "operation", "one_operation", "")
	}
	if u.Divide != nil && *u.Divide == 0 {
		sl.ReportError(u.Divide, "divide", "Divide", "divide_by_zero", "")
	}
}

func decimalUpdateRules(sl validator.StructLevel) {
	u := sl.Current().Interface().(DecimalUpdate)
	if u.operations() != 1 {
		sl.ReportError(u, "operation", "operation", "one_operation", "")
	}
	if u.Divide != nil && u.Divide.IsZero() {
		sl.ReportError(u.Divide, "divide", "Divide", "divide_by_zero", "")
	}
}

func stringListUpdateRules(sl validator.StructLevel) {
	u := sl.Current().Interface().(StringListUpdate)
	if (u.Set != nil) == (u.Push != nil) {
		sl.ReportError(u, "operation", "operation", "one_operation", "")
	}
	for _, s := range append(append([]string{}, u.Set...), u.Push...) {
		if s == "" {
			sl.ReportError(s, "roles", "roles", "required", "")
			return
		}
	}
}
