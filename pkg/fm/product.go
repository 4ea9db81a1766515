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

// A Product maps a feature or attribute to its value in a configuration.
// Keys are either raw textual paths (string, pre-resolution) or the
// resolved identity a checked model produced for them (a *Node for
// features, a *Attr for attributes). Values are bool for features and
// domain-typed for attributes. A Product may be partial while it is fed
// to NfProduct; it must be total when passed directly to a checked
// model's Eval.
type Product map[interface{}]interface{}

// unset is the sentinel a missing key resolves to during evaluation: it
// is never equal to any real value, including nil.
type unset struct{}

// Unset is returned in place of a value that is absent from a Product.
var Unset = unset{}

func (p Product) get(key interface{}) interface{} {
	if v, ok := p[key]; ok {
		return v
	}
	return Unset
}

func truthy(v interface{}) bool {
	switch x := v.(type) {
	case bool:
		return x
	case unset:
		return false
	case nil:
		return false
	case int:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
