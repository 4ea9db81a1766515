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

// localReason is one of the three leaf diagnostics a Reason tree node can
// carry: a mismatched value, a missing value, or unsatisfied dependencies.
type localReason interface {
	updateRef(updater func(interface{}) interface{})
	String() string
}

type reasonValueMismatch struct {
	ref      interface{}
	val      interface{}
	expected interface{} // nil means "no expectation recorded"
}

func (r *reasonValueMismatch) updateRef(updater func(interface{}) interface{}) {
	r.ref = updater(r.ref)
}

func (r *reasonValueMismatch) String() string {
	if r.expected == nil {
		return fmt.Sprintf("%v vs %v", r.ref, r.val)
	}
	return fmt.Sprintf("%v vs %v (expected: %v)", r.ref, r.val, r.expected)
}

type reasonValueNone struct {
	ref interface{}
}

func (r *reasonValueNone) updateRef(updater func(interface{}) interface{}) {
	r.ref = updater(r.ref)
}

func (r *reasonValueNone) String() string {
	return fmt.Sprintf("%v has no value in the input configuration", r.ref)
}

type reasonDependencies struct {
	ref  interface{}
	deps []interface{}
}

func (r *reasonDependencies) updateRef(updater func(interface{}) interface{}) {
	r.ref = updater(r.ref)
	for i, d := range r.deps {
		r.deps[i] = updater(d)
	}
}

func (r *reasonDependencies) String() string {
	tmp := make([]string, len(r.deps))
	for i, d := range r.deps {
		tmp[i] = fmt.Sprintf("%q", fmt.Sprint(d))
	}
	return fmt.Sprintf("%v should be True due to dependencies (found: %s)", r.ref, strings.Join(tmp, ", "))
}

// Reason is a hierarchical, updatable explanation of why a constraint or
// feature-model evaluation did not produce the expected value. A Reason
// is empty (Bool() == false) exactly when the corresponding evaluation
// verdict was as expected.
type Reason struct {
	ref   interface{}
	local []localReason
	subs  []*Reason
	count int
}

// newReason builds a Reason tree node labelled by ref (an expression/node),
// or by the positional index idx when ref is nil.
func newReason(ref interface{}, idx int) *Reason {
	if ref == nil {
		return &Reason{ref: fmt.Sprintf("[%d]", idx)}
	}
	return &Reason{ref: ref}
}

// AddValueMismatch records that ref evaluated to val instead of expected.
// A nil expected means no specific expectation was being checked against.
func (r *Reason) AddValueMismatch(ref, val, expected interface{}) {
	r.local = append(r.local, &reasonValueMismatch{ref: ref, val: val, expected: expected})
	r.count++
}

// AddValueNone records that ref has no value in the product under
// evaluation.
func (r *Reason) AddValueNone(ref interface{}) {
	r.local = append(r.local, &reasonValueNone{ref: ref})
	r.count++
}

// AddDependencies records that ref is false even though the deps listed
// were themselves selected.
func (r *Reason) AddDependencies(ref interface{}, deps []interface{}) {
	r.local = append(r.local, &reasonDependencies{ref: ref, deps: deps})
	r.count++
}

// AddSub attaches sub to r, silently dropping it when sub is empty.
func (r *Reason) AddSub(sub *Reason) {
	if sub != nil && sub.Bool() {
		r.subs = append(r.subs, sub)
		r.count++
	}
}

// UpdateRef rewrites every ref held anywhere in the tree through updater,
// typically the checked model's canonical-path map.
func (r *Reason) UpdateRef(updater func(interface{}) interface{}) {
	r.ref = updater(r.ref)
	for _, l := range r.local {
		l.updateRef(updater)
	}
	for _, s := range r.subs {
		s.UpdateRef(updater)
	}
}

// Bool reports whether r carries at least one reason.
func (r *Reason) Bool() bool {
	return r != nil && r.count != 0
}

func (r *Reason) tostring(indent string) string {
	if r.count == 0 {
		return ""
	}
	if r.count == 1 {
		if len(r.local) == 1 {
			return fmt.Sprintf("%s%v: %s\n", indent, r.ref, r.local[0])
		}
		return fmt.Sprintf("%s%v: %s", indent, r.ref, r.subs[0].tostring(indent))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%v: (\n", indent, r.ref)
	more := indent + " "
	for _, e := range r.local {
		fmt.Fprintf(&b, "%s%s\n", more, e)
	}
	for _, s := range r.subs {
		b.WriteString(s.tostring(more))
	}
	fmt.Fprintf(&b, "%s)\n", indent)
	return b.String()
}

// String renders r as an indented, human-readable explanation.
func (r *Reason) String() string {
	if r == nil {
		return ""
	}
	return r.tostring("")
}
