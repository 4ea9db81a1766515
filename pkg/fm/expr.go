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

import (
	"fmt"
	"strings"
)

// EvalResult is the outcome of evaluating an Expr or a Node against a
// Product: the value it computed, and, when that value differs from
// what the caller expected, a Reason explaining why.
type EvalResult struct {
	Value  interface{}
	Reason *Reason
}

// Bool reports the Boolean verdict of r; non-bool Values (e.g. a raw
// attribute value returned by a Var leaf) report true, except Unset,
// which reports false.
func (r *EvalResult) Bool() bool {
	if b, ok := r.Value.(bool); ok {
		return b
	}
	return r.Value != Unset
}

// Expr is a node of the constraint expression AST: a leaf (Var, Lit) or
// a composite (logical/relational). eval evaluates it against product;
// resolve rewrites textual Var references into resolved identities.
type Expr interface {
	Eval(product Product, idx int, expected *bool) *EvalResult
	resolve(path []string, lookup map[string][]lookupEntry, errs *DeclErrors) Expr
	String() string
}

func boolEq(res bool, expected *bool) bool {
	return expected != nil && *expected == res
}

// ---------------------------------------------------------------------
// leaves

// Var is a reference to a feature or attribute in the product, resolved
// by name at construction time and by identity after Check.
type Var struct {
	ref interface{} // string before resolve, *Node/*Attr after
}

// NewVar builds a reference to the feature or attribute named name.
func NewVar(name string) *Var { return &Var{ref: name} }

func (v *Var) Eval(product Product, idx int, expected *bool) *EvalResult {
	val := product.get(v.ref)
	if val == Unset {
		reason := newReason("Var", idx)
		reason.AddValueNone(v.ref)
		return &EvalResult{Value: Unset, Reason: reason}
	}
	return &EvalResult{Value: val}
}

func (v *Var) resolve(path []string, lookup map[string][]lookupEntry, errs *DeclErrors) Expr {
	if name, ok := v.ref.(string); ok {
		v.ref = checkExists(name, lookup, errs, path)
	}
	return v
}

func (v *Var) String() string { return fmt.Sprintf("Var(%v)", v.ref) }

// Lit is a constant value, unaffected by the product.
type Lit struct {
	val interface{}
}

// NewLit wraps a constant value as an expression leaf.
func NewLit(val interface{}) *Lit { return &Lit{val: val} }

func (l *Lit) Eval(product Product, idx int, expected *bool) *EvalResult {
	return &EvalResult{Value: l.val}
}
func (l *Lit) resolve(path []string, lookup map[string][]lookupEntry, errs *DeclErrors) Expr {
	return l
}
func (l *Lit) String() string { return fmt.Sprintf("%v", l.val) }

// coerce normalizes a constructor parameter into an Expr: an Expr is kept
// as-is, a string becomes a Var, anything else becomes a Lit.
func coerce(param interface{}) Expr {
	switch x := param.(type) {
	case Expr:
		return x
	case string:
		return NewVar(x)
	default:
		return NewLit(x)
	}
}

// ---------------------------------------------------------------------
// composite machinery shared by every n-ary/binary operator

type exprKind int

const (
	kindAnd exprKind = iota
	kindOr
	kindNot
	kindXor
	kindConflict
	kindImplies
	kindIff
	kindLt
	kindLeq
	kindEq
	kindGeq
	kindGt
)

var exprNames = map[exprKind]string{
	kindAnd: "And", kindOr: "Or", kindNot: "Not", kindXor: "Xor",
	kindConflict: "Conflict", kindImplies: "Implies", kindIff: "Iff",
	kindLt: "Lt", kindLeq: "Leq", kindEq: "Eq", kindGeq: "Geq", kindGt: "Gt",
}

// composite is the shared representation for every non-leaf Expr: a kind
// tag plus normalized children, with evaluation and per-child expectation
// dispatched by kind.
type composite struct {
	kind     exprKind
	children []Expr
}

func newComposite(kind exprKind, params ...interface{}) *composite {
	children := make([]Expr, len(params))
	for i, p := range params {
		children[i] = coerce(p)
	}
	return &composite{kind: kind, children: children}
}

func (c *composite) String() string {
	parts := make([]string, len(c.children))
	for i, ch := range c.children {
		parts[i] = ch.String()
	}
	return fmt.Sprintf("%s(%s)", exprNames[c.kind], strings.Join(parts, ", "))
}

func (c *composite) resolve(path []string, lookup map[string][]lookupEntry, errs *DeclErrors) Expr {
	for i, ch := range c.children {
		c.children[i] = ch.resolve(path, lookup, errs)
	}
	return c
}

// expectedFor computes the expectation propagated to child i given the
// node's own expected value, following the And/Or/Not expectation-
// propagation rules.
func (c *composite) expectedFor(i int, expected *bool) *bool {
	switch c.kind {
	case kindAnd:
		if expected != nil && *expected {
			return boolPtr(true)
		}
		return nil
	case kindOr:
		if expected == nil || *expected {
			return nil
		}
		return boolPtr(false)
	case kindNot:
		if expected == nil {
			return nil
		}
		return boolPtr(!*expected)
	default:
		return nil
	}
}

func boolPtr(b bool) *bool { return &b }

// compute reduces the evaluated child values to this node's own value.
func (c *composite) compute(values []interface{}) interface{} {
	switch c.kind {
	case kindAnd:
		for _, v := range values {
			if !truthy(v) {
				return false
			}
		}
		return true
	case kindOr:
		for _, v := range values {
			if truthy(v) {
				return true
			}
		}
		return false
	case kindNot:
		return !truthy(values[0])
	case kindXor:
		found := false
		for _, v := range values {
			if truthy(v) {
				if found {
					return false
				}
				found = true
			}
		}
		return found
	case kindConflict:
		found := false
		for _, v := range values {
			if truthy(v) {
				if found {
					return false
				}
				found = true
			}
		}
		return true
	case kindImplies:
		return !truthy(values[0]) || truthy(values[1])
	case kindIff:
		return truthy(values[0]) == truthy(values[1])
	case kindLt, kindLeq, kindEq, kindGeq, kindGt:
		return compareValues(c.kind, values[0], values[1])
	default:
		panic("fm: unknown expression kind")
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case float64:
		return float64(x), true
	default:
		return 0, false
	}
}

func compareValues(kind exprKind, a, b interface{}) bool {
	if fa, ok1 := asFloat(a); ok1 {
		if fb, ok2 := asFloat(b); ok2 {
			switch kind {
			case kindLt:
				return fa < fb
			case kindLeq:
				return fa <= fb
			case kindEq:
				return fa == fb
			case kindGeq:
				return fa >= fb
			case kindGt:
				return fa > fb
			}
		}
	}
	if sa, ok1 := a.(string); ok1 {
		if sb, ok2 := b.(string); ok2 {
			switch kind {
			case kindLt:
				return sa < sb
			case kindLeq:
				return sa <= sb
			case kindEq:
				return sa == sb
			case kindGeq:
				return sa >= sb
			case kindGt:
				return sa > sb
			}
		}
	}
	if kind == kindEq {
		return a == b
	}
	panic(fmt.Sprintf("fm: cannot compare %v and %v", a, b))
}

func (c *composite) Eval(product Product, idx int, expected *bool) *EvalResult {
	results := make([]*EvalResult, len(c.children))
	values := make([]interface{}, len(c.children))
	for i, ch := range c.children {
		results[i] = ch.Eval(product, i, c.expectedFor(i, expected))
		values[i] = results[i].Value
	}
	res := c.compute(values)
	resBool, _ := res.(bool)

	if boolEq(resBool, expected) {
		return &EvalResult{Value: res}
	}
	reason := newReason(exprNames[c.kind], idx)
	for i, ch := range c.children {
		reason.AddValueMismatch(ch, values[i], expectedValue(c.expectedFor(i, expected)))
	}
	for _, r := range results {
		reason.AddSub(r.Reason)
	}
	return &EvalResult{Value: res, Reason: reason}
}

func expectedValue(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return *b
}

// Constructors -----------------------------------------------------------

// And builds a constraint requiring every argument to be true.
func And(args ...interface{}) Expr { return newComposite(kindAnd, args...) }

// Or builds a constraint requiring at least one argument to be true.
func Or(args ...interface{}) Expr { return newComposite(kindOr, args...) }

// Not negates x.
func Not(x interface{}) Expr { return newComposite(kindNot, x) }

// Xor builds a constraint requiring exactly one argument to be true.
func Xor(args ...interface{}) Expr { return newComposite(kindXor, args...) }

// Conflict builds a constraint requiring at most one argument to be true;
// zero true arguments is accepted.
func Conflict(args ...interface{}) Expr { return newComposite(kindConflict, args...) }

// Implies builds the constraint ¬a ∨ b.
func Implies(a, b interface{}) Expr { return newComposite(kindImplies, a, b) }

// Iff builds the constraint a == b (as Booleans).
func Iff(a, b interface{}) Expr { return newComposite(kindIff, a, b) }

// Lt builds the relational constraint a < b.
func Lt(a, b interface{}) Expr { return newComposite(kindLt, a, b) }

// Leq builds the relational constraint a <= b.
func Leq(a, b interface{}) Expr { return newComposite(kindLeq, a, b) }

// Eq builds the relational constraint a == b.
func Eq(a, b interface{}) Expr { return newComposite(kindEq, a, b) }

// Geq builds the relational constraint a >= b.
func Geq(a, b interface{}) Expr { return newComposite(kindGeq, a, b) }

// Gt builds the relational constraint a > b.
func Gt(a, b interface{}) Expr { return newComposite(kindGt, a, b) }
