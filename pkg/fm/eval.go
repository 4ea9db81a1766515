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

// evalResult is the per-node outcome threaded up the recursive evaluator:
// the EvalResult surface (value/reason) plus the node-local normalized
// value and the set of sub-nodes that were selected (true), needed by the
// caller to enforce feature/subfeature coherence.
type evalResult struct {
	EvalResult
	nvalue interface{}
	snodes []interface{}
}

// Eval checks product against the model rooted at n, which must already
// be checked, and returns the Boolean verdict plus, if it is not what
// expected names, a Reason explaining why. Eval panics if n has not been
// checked.
func (n *Node) Eval(product Product, expected bool) *EvalResult {
	if n.lookup == nil {
		panic("fm: evaluating a non-well-formed FM (call Check() on it first)")
	}
	res := n.evalGeneric(product, boolPtr(expected))
	if res.Reason.Bool() {
		res.Reason.UpdateRef(n.updater)
	}
	return &res.EvalResult
}

// expectedFor computes the expectation propagated to sub-element i
// (child, attribute or ctc) given this node's own expected value.
func (n *Node) expectedFor(i int, expected *bool) *bool {
	switch n.kind {
	case KindAnd:
		if expected != nil && *expected {
			return boolPtr(true)
		}
		return nil
	case KindOr:
		if expected != nil && !*expected {
			return boolPtr(false)
		}
		return nil
	default: // KindXor, KindAny
		return nil
	}
}

// groupReduce computes this group's own reduced value over its sub
// values (children's nvalue, attribute values, ctc values).
func (n *Node) groupReduce(values []interface{}) bool {
	switch n.kind {
	case KindAnd:
		for _, v := range values {
			if !truthy(v) {
				return false
			}
		}
		return true
	case KindOr:
		for _, v := range values {
			if truthy(v) {
				return true
			}
		}
		return false
	case KindXor:
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
	default: // KindAny
		return true
	}
}

func (n *Node) evalGeneric(product Product, expected *bool) *evalResult {
	childResults := make([]*evalResult, len(n.children))
	for i, c := range n.children {
		childResults[i] = c.evalGeneric(product, n.expectedFor(i, expected))
	}

	attrResults := make([]*EvalResult, len(n.attrs))
	for i, a := range n.attrs {
		attrResults[i] = n.evalAttr(a, product, n.expectedFor(i, expected))
	}

	ctcResults := make([]*EvalResult, len(n.ctcs))
	for i, c := range n.ctcs {
		ctcResults[i] = c.Eval(product, i, n.expectedFor(i, expected))
	}

	var subValues []interface{}
	for _, r := range childResults {
		subValues = append(subValues, r.nvalue)
	}
	for _, r := range attrResults {
		subValues = append(subValues, r.Value)
	}
	for _, r := range ctcResults {
		subValues = append(subValues, r.Value)
	}
	nvalueSub := n.groupReduce(subValues)

	valueSubs := true
	var snodes []interface{}
	for _, r := range childResults {
		if !r.Bool() {
			valueSubs = false
		}
		snodes = append(snodes, r.snodes...)
	}

	var reason *Reason
	var nvalueLocal interface{}
	if n.named {
		nvalueLocal = product.get(n)
		switch {
		case nvalueLocal == Unset:
			reason = newReason(n, 0)
			reason.AddValueNone(n)
		case !truthy(nvalueLocal) && len(snodes) > 0:
			reason = newReason(n, 0)
			reason.AddDependencies(n, snodes)
		case truthy(nvalueLocal) && !nvalueSub:
			reason = newReason(n, 0)
			reason.AddValueMismatch(n, true, false)
		case truthy(nvalueLocal):
			snodes = append(snodes, interface{}(n))
		}
	} else {
		nvalueLocal = nvalueSub
	}

	value := valueSubs && reason == nil

	// Mirrors the reference implementation's "nvalue_local != expected":
	// any mismatch in kind (missing value) or in truth value, and any
	// comparison against a "no expectation" (nil) expected, counts as a
	// mismatch here.
	nvalBool, nvalIsBool := nvalueLocal.(bool)
	mismatchesExpected := !(nvalIsBool && expected != nil && nvalBool == *expected)

	if mismatchesExpected || !value {
		if reason == nil {
			reason = newReason(n, 0)
		}
		if mismatchesExpected {
			reason.AddValueMismatch(n, nvalueLocal, expectedValue(expected))
		}
		for _, r := range childResults {
			reason.AddSub(r.Reason)
		}
		for _, r := range attrResults {
			reason.AddSub(r.Reason)
		}
		for _, r := range ctcResults {
			reason.AddSub(r.Reason)
		}
	}

	return &evalResult{
		EvalResult: EvalResult{Value: value, Reason: reason},
		nvalue:     nvalueLocal,
		snodes:     snodes,
	}
}

func (n *Node) evalAttr(att *Attr, product Product, expected *bool) *EvalResult {
	value := product.get(att)
	if value == Unset {
		if expected != nil && *expected {
			reason := newReason(n, 0)
			reason.AddValueNone(att)
			return &EvalResult{Value: false, Reason: reason}
		}
		return &EvalResult{Value: false}
	}
	res := att.Domain.Accepts(value)
	if boolEq(res, expected) {
		return &EvalResult{Value: res}
	}
	reason := newReason(n, 0)
	reason.AddValueMismatch(att, res, expectedValue(expected))
	return &EvalResult{Value: res, Reason: reason}
}
