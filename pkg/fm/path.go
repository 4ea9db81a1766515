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

import "strings"

// PathToString joins path segments with "/". A nil path prints as "None",
// matching the reference implementation.
func PathToString(path []string) string {
	if path == nil {
		return "None"
	}
	return strings.Join(path, "/")
}

// PathFromString splits s on "/" into path segments.
func PathFromString(s string) []string {
	return strings.Split(s, "/")
}

// PathIncludes reports whether included appears as an ordered (not
// necessarily contiguous) subsequence of p.
func PathIncludes(p, included []string) bool {
	i, j := 0, 0
	for j < len(included) {
		if i >= len(p) {
			return false
		}
		if p[i] == included[j] {
			j++
		}
		i++
	}
	return true
}

// lookupEntry binds a declared name to the node or attribute it names and
// the canonical path at which it occurs.
type lookupEntry struct {
	ref  interface{} // *Node or *Attr
	path []string
}

// checkExists resolves refStr (a "/"-separated reference, possibly with a
// leading partial path) against lookup, recording an Unbound or Ambiguous
// diagnostic in errs when resolution fails, and returns the resolved
// identity (a *Node or *Attr) on success, or the original refStr on
// failure so evaluation can still proceed and report a missing value.
func checkExists(refStr string, lookup map[string][]lookupEntry, errs *DeclErrors, additionalPath []string) interface{} {
	parts := PathFromString(refStr)
	name := parts[len(parts)-1]
	prefix := append(append([]string{}, additionalPath...), parts[:len(parts)-1]...)

	decls, ok := lookup[name]
	if !ok {
		errs.AddUnbound(name, "")
		return refStr
	}

	var matches []lookupEntry
	for _, d := range decls {
		if PathIncludes(d.path, prefix) {
			matches = append(matches, d)
		}
	}

	ctx := ""
	if additionalPath != nil {
		ctx = PathToString(additionalPath)
	}

	switch len(matches) {
	case 0:
		errs.AddUnbound(refStr, ctx)
		return refStr
	case 1:
		return matches[0].ref
	default:
		paths := make([]string, len(matches))
		for i, m := range matches {
			paths[i] = PathToString(m.path)
		}
		errs.AddAmbiguous(refStr, ctx, paths)
		return refStr
	}
}
