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
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDanglingAttributeDropped: an attribute of an unselected feature
// does not survive normalization.
func TestDanglingAttributeDropped(t *testing.T) {
	m := checkedHelloWorld(t)
	got := m.CombineProduct(map[string]interface{}{
		"HelloWorld": true,
		"lang":       true,
		"lang_v":     lang(0),
		"times":      false,
		"times_v":    4,
	})
	if _, ok := got["times_v"]; ok {
		t.Errorf("CombineProduct() kept times_v even though times is false: %v", got)
	}
	if got["times"] != false {
		t.Errorf("CombineProduct()[\"times\"] = %v, want false", got["times"])
	}
}

// TestProvenanceMerge: a later partial overrides an earlier one on the
// keys they share, leaving the rest untouched.
func TestProvenanceMerge(t *testing.T) {
	m := checkedHelloWorld(t)
	p1 := map[string]interface{}{
		"HelloWorld": true,
		"lang":       true,
		"lang_v":     lang(0),
		"times":      true,
		"times_v":    2,
	}
	p2 := map[string]interface{}{
		"lang_v":  lang(2),
		"times_v": 3,
	}
	got := m.CombineProduct(p1, p2)
	want := map[string]interface{}{
		"HelloWorld": true,
		"lang":       true,
		"lang_v":     lang(2),
		"times":      true,
		"times_v":    3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CombineProduct() mismatch (-want +got):\n%s", diff)
	}
}

// TestNormalizationRoundTrip: a total product accepted by the model is
// returned unchanged, on the keys it owns, by NfProduct.
func TestNormalizationRoundTrip(t *testing.T) {
	m := checkedHelloWorld(t)
	in := map[string]interface{}{
		"HelloWorld": true,
		"lang":       true,
		"lang_v":     lang(1),
		"times":      true,
		"times_v":    5,
	}
	got := m.CombineProduct(in)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("NfProduct() round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNfProductReportsUnbound(t *testing.T) {
	m := checkedHelloWorld(t)
	_, errs := m.NfProduct(map[string]interface{}{"nonexistent": true})
	if !errs.HasUnbounds() {
		t.Errorf("NfProduct() did not report the unbound key \"nonexistent\"")
	}
}
