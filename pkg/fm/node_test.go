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

import "testing"

type lang int

func (lang) EnumValues() []interface{} { return []interface{}{lang(0), lang(1), lang(2)} }

// helloWorldModel builds a small model shared across these tests: a
// top-level feature requiring a chosen language, and allowing an
// optional repeated greeting.
func helloWorldModel() *Node {
	return FD("HelloWorld",
		FDAnd(FD("lang", NewAttr("lang_v", Enum(lang(0))))),
		FDAny(FD("times", NewAttr("times_v", Int(Range(0, nil))))),
	)
}

func TestCheckIsIdempotent(t *testing.T) {
	m := helloWorldModel()
	errs1 := m.Check()
	errs2 := m.Check()
	if errs1 != errs2 {
		t.Errorf("Check() called twice returned different accumulators")
	}
	if !errs1.Empty() {
		t.Errorf("Check() on a well-formed model reported errors: %v", errs1)
	}
}

func TestCheckResolvesCtcByName(t *testing.T) {
	m := FD("HelloWorld",
		FD("lang"),
		FD("times"),
		Implies("lang", "times"),
	)
	errs := m.Check()
	if !errs.Empty() {
		t.Fatalf("Check() reported errors: %v", errs)
	}
	c := m.CrossTreeConstraints()[0]
	if _, ok := c.(*composite).children[0].(*Var).ref.(*Node); !ok {
		t.Errorf("ctc Var was not resolved to a *Node identity")
	}
}

func TestCheckReportsUnbound(t *testing.T) {
	m := FD("HelloWorld", FD("lang"), Implies("lang", "nonexistent"))
	errs := m.Check()
	if !errs.HasUnbounds() {
		t.Errorf("Check() did not report the unbound reference \"nonexistent\"")
	}
}

func TestCheckReportsAmbiguousName(t *testing.T) {
	// "dup" is declared once under each of two disjoint branches; neither
	// declaration alone is a duplicate of the other, but a cross-tree
	// reference to the bare name "dup" from the root cannot tell which
	// one is meant.
	m := FD("HelloWorld",
		FDAnd("branchA", FD("dup")),
		FDAnd("branchB", FD("dup")),
		NewVar("dup"),
	)
	errs := m.Check()
	if !errs.HasAmbiguities() {
		t.Errorf("Check() did not report \"dup\" as ambiguous from the root's context")
	}
}

func TestLookupUniqueness(t *testing.T) {
	// After Check, each declared name resolves to either one lookup
	// entry, or several on pairwise non-overlapping paths.
	m := helloWorldModel()
	m.Check()
	for name, entries := range m.lookup {
		if len(entries) <= 1 {
			continue
		}
		for i := range entries {
			for j := range entries {
				if i == j {
					continue
				}
				if PathIncludes(entries[i].path, entries[j].path) {
					t.Errorf("name %q has overlapping declarations at %v and %v", name, entries[i].path, entries[j].path)
				}
			}
		}
	}
}

func TestEvalPanicsWithoutCheck(t *testing.T) {
	m := helloWorldModel()
	defer func() {
		if recover() == nil {
			t.Fatalf("Eval on an unchecked model did not panic")
		}
	}()
	m.Eval(Product{}, true)
}

func TestNfProductPanicsOnNonRoot(t *testing.T) {
	child := FD("lang")
	m := FD("HelloWorld", child)
	m.Check()
	defer func() {
		if recover() == nil {
			t.Fatalf("NfProduct on a non-root node did not panic")
		}
	}()
	child.NfProduct(map[string]interface{}{})
}
