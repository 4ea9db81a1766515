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

type color int

func (c color) EnumValues() []interface{} {
	return []interface{}{color(0), color(1), color(2)}
}

type noColor int

func (noColor) EnumValues() []interface{} { return nil }

func TestBoolDomain(t *testing.T) {
	d := Bool()
	if !d.Accepts(true) {
		t.Errorf("Bool().Accepts(true) = false, want true")
	}
	if d.Accepts(1) {
		t.Errorf("Bool().Accepts(1) = true, want false")
	}
}

func TestEnumDomain(t *testing.T) {
	d := Enum(color(0))
	if !d.Accepts(color(1)) {
		t.Errorf("Enum.Accepts(color(1)) = false, want true")
	}
	if d.Accepts(color(5)) {
		t.Errorf("Enum.Accepts(color(5)) = true, want false")
	}
}

func TestEnumRejectsEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Enum(noColor) did not panic on an empty enumeration")
		}
	}()
	Enum(noColor(0))
}

func TestIntBoundaries(t *testing.T) {
	// Int(0, None) accepts any non-negative integer and rejects floats.
	unbounded := Int(Range(0, nil))
	if !unbounded.Accepts(0) || !unbounded.Accepts(1000000) {
		t.Errorf("Int(Range(0, nil)) rejected a non-negative integer")
	}
	if unbounded.Accepts(-1) {
		t.Errorf("Int(Range(0, nil)).Accepts(-1) = true, want false")
	}
	if unbounded.Accepts(1.5) {
		t.Errorf("Int(Range(0, nil)).Accepts(1.5) = true, want false")
	}

	// Int(0) is shorthand for [0, 1): accepts only 0.
	zeroOnly := Int(One(0))
	if !zeroOnly.Accepts(0) {
		t.Errorf("Int(One(0)).Accepts(0) = false, want true")
	}
	if zeroOnly.Accepts(1) {
		t.Errorf("Int(One(0)).Accepts(1) = true, want false")
	}
}

func TestFloatDomain(t *testing.T) {
	d := Float(Range(0.0, 1.0))
	if !d.Accepts(0.5) {
		t.Errorf("Float(Range(0,1)).Accepts(0.5) = false, want true")
	}
	if d.Accepts(1) {
		t.Errorf("Float domain accepted a Go int instead of float64")
	}
}

func TestListDomain(t *testing.T) {
	d := List([]IntervalSpec{Range(1, 3)}, Int())
	if !d.Accepts([]interface{}{1, 2}) {
		t.Errorf("List rejected a 2-element slice within [1,3)")
	}
	if d.Accepts([]interface{}{1, 2, 3}) {
		t.Errorf("List accepted a 3-element slice outside [1,3)")
	}
	if d.Accepts([]interface{}{1, "two"}) {
		t.Errorf("List accepted an element failing its own spec")
	}
}

func TestRangeRejectsInvalidBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Range(\"x\", 1) did not panic on a non-numeric bound")
		}
	}()
	Range("x", 1)
}
