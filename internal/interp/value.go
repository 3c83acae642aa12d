// Package interp implements a tree-walking evaluator for Lox programs.
package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind uint8

const (
	NilKind Kind = iota
	BoolKind
	NumberKind
	StringKind
)

var kindNames = [...]string{
	NilKind:    "nil",
	BoolKind:   "boolean",
	NumberKind: "number",
	StringKind: "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a runtime value. The set of implementations is closed:
// Nil, Bool, Number and String.
type Value interface {
	Kind() Kind
	String() string // display form used by print
	aValue()
}

// Nil is the nil value.
type Nil struct{}

// Bool is a boolean value.
type Bool bool

// Number is a double-precision number. There is no separate integer type.
type Number float64

// String is a text value.
type String string

func (Nil) Kind() Kind    { return NilKind }
func (Bool) Kind() Kind   { return BoolKind }
func (Number) Kind() Kind { return NumberKind }
func (String) Kind() Kind { return StringKind }

func (Nil) aValue()    {}
func (Bool) aValue()   {}
func (Number) aValue() {}
func (String) aValue() {}

func (Nil) String() string { return "nil" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// String formats n without a trailing ".0" for integral values.
// Magnitudes below 1e-3 or from 1e7 up use exponent form, e.g. "1.5E-4"
// and "1.0E7".
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// 'e' gives "1.5e-04"; rewrite as "1.5E-4".
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(e)
}

func (s String) String() string { return string(s) }

// FromLiteral converts a constant stored in a syntax.Literal.
func FromLiteral(v any) Value {
	switch v := v.(type) {
	case nil:
		return Nil{}
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case string:
		return String(v)
	}
	panic(fmt.Sprintf("interp: unexpected literal %T", v))
}

// Truthy reports the truthiness of v: nil and false are falsy,
// everything else (including 0 and "") is truthy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	}
	return true
}

// Equal reports whether a and b are equal. Values of different kinds are
// never equal. Numbers are equal when they have the same bits, except that
// all NaNs are equal to each other; so NaN == NaN and 0 != -0.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil{}
	}
	if b == nil {
		b = Nil{}
	}
	if x, ok := a.(Number); ok {
		y, ok := b.(Number)
		return ok && numberEqual(float64(x), float64(y))
	}
	return a == b
}

func numberEqual(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.IsNaN(x) && math.IsNaN(y)
	}
	return math.Float64bits(x) == math.Float64bits(y)
}
