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
	"strings"
	"testing"
)

func checkedHelloWorld(t *testing.T) *Node {
	t.Helper()
	m := helloWorldModel()
	if errs := m.Check(); !errs.Empty() {
		t.Fatalf("Check() reported errors: %v", errs)
	}
	return m
}

func childByName(m *Node, name string) *Node {
	for _, c := range m.Children() {
		if c.Name() == name {
			return c
		}
		if got := childByName(c, name); got != nil {
			return got
		}
	}
	return nil
}

// TestHelloWorldValid: a fully satisfying product evaluates true with an
// empty reason.
func TestHelloWorldValid(t *testing.T) {
	m := checkedHelloWorld(t)
	langV := childByName(m, "lang").Attributes()[0]
	timesV := childByName(m, "times").Attributes()[0]

	product := Product{
		m:                       true,
		childByName(m, "lang"):  true,
		langV:                   lang(0),
		childByName(m, "times"): true,
		timesV:                  2,
	}

	res := m.Eval(product, true)
	if !res.Value.(bool) {
		t.Fatalf("Eval() = %v, want true", res.Value)
	}
	if res.Reason.Bool() {
		t.Errorf("Eval() produced a non-empty reason for a satisfying product: %s", res.Reason)
	}
}

// TestHelloWorldWrongGroup: lang is false even though its And-group
// parent is required, so the verdict is false and the reason names
// "lang".
func TestHelloWorldWrongGroup(t *testing.T) {
	m := checkedHelloWorld(t)
	timesV := childByName(m, "times").Attributes()[0]

	product := Product{
		m:                       true,
		childByName(m, "lang"):  false,
		childByName(m, "times"): true,
		timesV:                  4,
	}

	res := m.Eval(product, true)
	if res.Value.(bool) {
		t.Fatalf("Eval() = true, want false")
	}
	if !strings.Contains(res.Reason.String(), "lang") {
		t.Errorf("reason does not mention \"lang\": %s", res.Reason)
	}
}

// TestHelloWorldBadAttributeType: an attribute value of the wrong type
// produces a value-mismatch reason on that attribute.
func TestHelloWorldBadAttributeType(t *testing.T) {
	m := checkedHelloWorld(t)
	langV := childByName(m, "lang").Attributes()[0]
	timesV := childByName(m, "times").Attributes()[0]

	product := Product{
		m:                       true,
		childByName(m, "lang"):  true,
		langV:                   1, // an int where an Enum value is expected
		childByName(m, "times"): true,
		timesV:                  2,
	}

	res := m.Eval(product, true)
	if res.Value.(bool) {
		t.Fatalf("Eval() = true, want false")
	}
	if !res.Reason.Bool() {
		t.Fatalf("bad attribute type produced no reason")
	}
}

func TestMissingRequiredAttribute(t *testing.T) {
	m := checkedHelloWorld(t)
	timesV := childByName(m, "times").Attributes()[0]
	// lang present but with no lang_v at all: the attribute is missing,
	// which under And-group propagation (expected=true) is itself a
	// failure distinct from a value-mismatch.
	product := Product{
		m:                       true,
		childByName(m, "lang"):  true,
		childByName(m, "times"): true,
		timesV:                  2,
	}
	res := m.Eval(product, true)
	if res.Value.(bool) {
		t.Fatalf("Eval() = true, want false (missing required attribute)")
	}
}
