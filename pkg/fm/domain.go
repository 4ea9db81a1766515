// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fm

import "fmt"

// A Domain validates the values an attribute may take. Every variant
// implements Accepts; construction of a malformed domain panics, mirroring
// the reference implementation's ValueError on a malformed spec.
type Domain interface {
	Accepts(value interface{}) bool
	String() string
}

// Bound is one endpoint of an Interval. A nil Bound means unbounded on
// that side.
type Bound = interface{}

// Interval is a half-open range [Lo, Hi) used by Int and Float domains and
// by the size domain of List. Either bound may be nil for "unbounded".
type Interval struct {
	Lo, Hi Bound
}

func boundLess(v float64, b Bound) bool {
	switch x := b.(type) {
	case nil:
		return false
	case int:
		return v < float64(x)
	case float64:
		return v < x
	default:
		panic(fmt.Sprintf("fm: invalid interval bound %v (%T)", b, b))
	}
}

func boundLessEq(v float64, b Bound) bool {
	switch x := b.(type) {
	case nil:
		return false
	case int:
		return v <= float64(x)
	case float64:
		return v <= x
	default:
		panic(fmt.Sprintf("fm: invalid interval bound %v (%T)", b, b))
	}
}

// contains reports whether lo <= v < hi, with nil bounds unbounded.
func (iv Interval) contains(v float64) bool {
	if iv.Lo != nil && boundLess(v, iv.Lo) {
		return false
	}
	if iv.Hi != nil && !boundLess(v, iv.Hi) {
		return false
	}
	return true
}

func (iv Interval) String() string {
	lo := "-inf"
	if iv.Lo != nil {
		lo = fmt.Sprint(iv.Lo)
	}
	hi := "+inf"
	if iv.Hi != nil {
		hi = fmt.Sprint(iv.Hi)
	}
	return fmt.Sprintf("[%s, %s)", lo, hi)
}

// IntervalSpec is the raw form a caller passes to Int, Float, or the size
// argument of List: either a bare number n (desugared to [n, n+1)), or an
// explicit (lo, hi) pair.
type IntervalSpec struct {
	single   Bound
	isSingle bool
	lo, hi   Bound
}

// One builds an IntervalSpec for the single value n, desugaring to [n, n+1).
func One(n interface{}) IntervalSpec {
	if !isValidBound(n) {
		panic(fmt.Sprintf("fm: expected a numeric bound (found %v)", n))
	}
	return IntervalSpec{single: n, isSingle: true}
}

// Range builds an IntervalSpec for the half-open range [lo, hi).
func Range(lo, hi interface{}) IntervalSpec {
	if !isValidBound(lo) || !isValidBound(hi) {
		panic(fmt.Sprintf("fm: expected domain specification (found (%v, %v))", lo, hi))
	}
	return IntervalSpec{lo: lo, hi: hi}
}

func isValidBound(v interface{}) bool {
	if v == nil {
		return true
	}
	switch v.(type) {
	case int, float64:
		return true
	default:
		return false
	}
}

func toInterval(spec IntervalSpec) Interval {
	if spec.isSingle {
		n := spec.single
		switch x := n.(type) {
		case int:
			return Interval{Lo: x, Hi: x + 1}
		case float64:
			return Interval{Lo: x, Hi: x + 1}
		default:
			panic(fmt.Sprintf("fm: expected domain specification (found %v)", n))
		}
	}
	return Interval{Lo: spec.lo, Hi: spec.hi}
}

func checkIntervals(domain []Interval, v float64) bool {
	if len(domain) == 0 {
		return true
	}
	for _, iv := range domain {
		if iv.contains(v) {
			return true
		}
	}
	return false
}

// classDomain accepts values of the given Go kind via a type switch
// delegated to typeCheck.
type classDomain struct {
	name      string
	typeCheck func(interface{}) bool
}

func (c *classDomain) Accepts(v interface{}) bool { return c.typeCheck(v) }
func (c *classDomain) String() string             { return c.name }

// Class builds a domain that accepts any value for which typeCheck
// returns true. It is the escape hatch the Bool and String domains are
// themselves built from.
func Class(name string, typeCheck func(interface{}) bool) Domain {
	return &classDomain{name: name, typeCheck: typeCheck}
}

// Bool accepts Go bool values.
func Bool() Domain {
	return Class("Bool", func(v interface{}) bool { _, ok := v.(bool); return ok })
}

// String accepts Go string values.
func String() Domain {
	return Class("String", func(v interface{}) bool { _, ok := v.(string); return ok })
}

// Enumerator is implemented by Go types used as Enum domains; EnumValues
// lists every value the enumeration may take.
type Enumerator interface {
	EnumValues() []interface{}
}

type enumDomain struct {
	values map[interface{}]bool
}

func (e *enumDomain) Accepts(v interface{}) bool { return e.values[v] }
func (e *enumDomain) String() string             { return "Enum" }

// Enum accepts values that are members of the given enumeration.
// Construction panics if the enumeration has no values, mirroring the
// reference implementation's rejection of a non-enum class.
func Enum(e Enumerator) Domain {
	vals := e.EnumValues()
	if len(vals) == 0 {
		panic(fmt.Sprintf("fm: expected an enum type (found %v)", e))
	}
	set := make(map[interface{}]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return &enumDomain{values: set}
}

type intDomain struct {
	intervals []Interval
}

func (d *intDomain) Accepts(v interface{}) bool {
	n, ok := v.(int)
	if !ok {
		return false
	}
	return checkIntervals(d.intervals, float64(n))
}
func (d *intDomain) String() string { return "Int" }

// Int accepts Go int values falling in any of the given intervals; an
// empty spec list means no restriction beyond being an int.
func Int(specs ...IntervalSpec) Domain {
	d := &intDomain{}
	for _, s := range specs {
		d.intervals = append(d.intervals, toInterval(s))
	}
	return d
}

type floatDomain struct {
	intervals []Interval
}

func (d *floatDomain) Accepts(v interface{}) bool {
	n, ok := v.(float64)
	if !ok {
		return false
	}
	return checkIntervals(d.intervals, n)
}
func (d *floatDomain) String() string { return "Float" }

// Float accepts Go float64 values falling in any of the given intervals;
// an empty spec list means no restriction beyond being a float64.
func Float(specs ...IntervalSpec) Domain {
	d := &floatDomain{}
	for _, s := range specs {
		d.intervals = append(d.intervals, toInterval(s))
	}
	return d
}

type listDomain struct {
	size []Interval
	spec Domain // nil means any element allowed
}

func (d *listDomain) Accepts(v interface{}) bool {
	rv, ok := toSlice(v)
	if !ok {
		return false
	}
	if !checkIntervals(d.size, float64(len(rv))) {
		return false
	}
	if d.spec == nil {
		return true
	}
	for _, el := range rv {
		if !d.spec.Accepts(el) {
			return false
		}
	}
	return true
}
func (d *listDomain) String() string { return "List" }

func toSlice(v interface{}) ([]interface{}, bool) {
	switch x := v.(type) {
	case []interface{}:
		return x, true
	default:
		return nil, false
	}
}

// List accepts a []interface{} value whose length falls within size (an
// empty size means no length restriction) and each element of which
// satisfies spec (a nil spec means any element allowed).
func List(size []IntervalSpec, spec Domain) Domain {
	d := &listDomain{spec: spec}
	for _, s := range size {
		d.size = append(d.size, toInterval(s))
	}
	return d
}
