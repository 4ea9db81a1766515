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

// An Unbound is a declaration error raised when a textual reference does
// not resolve to any node or attribute in the model.
type Unbound struct {
	Name string
	Path string // canonical path context the reference was resolved against, "" if none
}

func (u *Unbound) Error() string {
	if u.Path == "" {
		return "variable \"" + u.Name + "\" not declared"
	}
	return "variable \"" + u.Name + "\" not declared in path \"" + u.Path + "\""
}

// An Ambiguous is a declaration error raised when a textual reference
// resolves to more than one node or attribute reachable from the context
// it was written in.
type Ambiguous struct {
	Name  string
	Path  string // "" when the reference had no context path
	Paths []string
}

func (a *Ambiguous) Error() string {
	tmp := make([]string, len(a.Paths))
	for i, p := range a.Paths {
		tmp[i] = "\"" + p + "\""
	}
	joined := strings.Join(tmp, ", ")
	if a.Path == "" {
		return "reference \"" + a.Name + "\" is ambiguous (corresponds to paths: " + joined + ")"
	}
	return "reference \"" + a.Path + "[" + a.Name + "]\" is ambiguous (corresponds to paths: " + joined + ")"
}

// DeclErrors accumulates the name-resolution diagnostics produced while
// checking a feature model or resolving a constraint/product against it.
// It is never raised; callers inspect it after Check, NfConstraint or
// NfProduct returns.
type DeclErrors struct {
	Unbounds    []*Unbound
	Ambiguities []*Ambiguous
}

// NewDeclErrors returns an empty accumulator.
func NewDeclErrors() *DeclErrors {
	return &DeclErrors{}
}

// AddUnbound records that name could not be resolved, optionally within
// the context of path.
func (e *DeclErrors) AddUnbound(name, path string) {
	e.Unbounds = append(e.Unbounds, &Unbound{Name: name, Path: path})
}

// AddAmbiguous records that name resolved to more than one candidate path
// when looked up from path.
func (e *DeclErrors) AddAmbiguous(name, path string, paths []string) {
	e.Ambiguities = append(e.Ambiguities, &Ambiguous{Name: name, Path: path, Paths: paths})
}

// HasUnbounds reports whether any unbound reference was recorded.
func (e *DeclErrors) HasUnbounds() bool { return len(e.Unbounds) != 0 }

// HasAmbiguities reports whether any ambiguous reference was recorded.
func (e *DeclErrors) HasAmbiguities() bool { return len(e.Ambiguities) != 0 }

// Empty reports whether no declaration errors were recorded at all.
func (e *DeclErrors) Empty() bool {
	return len(e.Unbounds) == 0 && len(e.Ambiguities) == 0
}

// Errs returns the accumulated errors flattened into a single slice, in
// unbound-then-ambiguous order, matching String.
func (e *DeclErrors) Errs() []error {
	errs := make([]error, 0, len(e.Unbounds)+len(e.Ambiguities))
	for _, u := range e.Unbounds {
		errs = append(errs, u)
	}
	for _, a := range e.Ambiguities {
		errs = append(errs, a)
	}
	return errs
}

func (e *DeclErrors) String() string {
	var b strings.Builder
	for i, err := range e.Errs() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("ERROR: ")
		b.WriteString(err.Error())
	}
	return b.String()
}
