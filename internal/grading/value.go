package grading

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is an optional number. The zero Value is unset, which is distinct
// from a set zero.
type Value struct {
	v   float64
	set bool
}

// Unset returns the empty value.
func Unset() Value { return Value{} }

// Of returns a set value.
func Of(v float64) Value { return Value{v: v, set: true} }

func (x Value) IsSet() bool { return x.set }

// Get returns the number and whether it is set.
func (x Value) Get() (float64, bool) { return x.v, x.set }

// String renders unset as "" and set values in their shortest decimal form,
// so that feeding the result back through Normalize yields the same value.
func (x Value) String() string {
	if !x.set {
		return ""
	}
	return strconv.FormatFloat(x.v, 'f', -1, 64)
}

// Equal reports whether both values are unset or hold the same number.
func (x Value) Equal(y Value) bool {
	return x.set == y.set && (!x.set || x.v == y.v)
}

func (x Value) MarshalJSON() ([]byte, error) {
	if !x.set {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

func (x *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*x = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*x = Of(f)
	return nil
}

func (x Value) clamp(lo, hi float64) Value {
	if !x.set {
		return x
	}
	return Of(math.Min(hi, math.Max(lo, x.v)))
}
