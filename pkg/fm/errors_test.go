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

	"github.com/openconfig/gnmi/errdiff"
)

func TestUnboundError(t *testing.T) {
	tests := []struct {
		desc string
		in   *Unbound
		want string
	}{{
		desc: "no path context",
		in:   &Unbound{Name: "lang"},
		want: "not declared",
	}, {
		desc: "with path context",
		in:   &Unbound{Name: "lang", Path: "HelloWorld"},
		want: "not declared in path",
	}}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if diff := errdiff.Substring(tt.in, tt.want); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestAmbiguousError(t *testing.T) {
	a := &Ambiguous{Name: "lang", Paths: []string{"A/lang", "B/lang"}}
	if diff := errdiff.Substring(a, "is ambiguous"); diff != "" {
		t.Error(diff)
	}
	if diff := errdiff.Substring(a, "A/lang"); diff != "" {
		t.Error(diff)
	}
}

func TestDeclErrorsAccumulate(t *testing.T) {
	errs := NewDeclErrors()
	if !errs.Empty() {
		t.Fatalf("new DeclErrors is not empty")
	}

	errs.AddUnbound("lang", "")
	if !errs.HasUnbounds() {
		t.Errorf("HasUnbounds() = false, want true")
	}
	if errs.HasAmbiguities() {
		t.Errorf("HasAmbiguities() = true, want false")
	}

	errs.AddAmbiguous("lang", "HelloWorld", []string{"A/lang", "B/lang"})
	if !errs.HasAmbiguities() {
		t.Errorf("HasAmbiguities() = false, want true")
	}
	if got, want := len(errs.Errs()), 2; got != want {
		t.Errorf("len(Errs()) = %d, want %d", got, want)
	}
	// Regression test for the "add_ambiguous appends to the wrong slice"
	// defect: an ambiguous reference must show up in Ambiguities, not
	// Unbounds.
	if got, want := len(errs.Unbounds), 1; got != want {
		t.Errorf("len(Unbounds) = %d, want %d (ambiguous entries must not land here)", got, want)
	}
	if got, want := len(errs.Ambiguities), 1; got != want {
		t.Errorf("len(Ambiguities) = %d, want %d", got, want)
	}
}
