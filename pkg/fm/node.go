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

import "fmt"

// Kind identifies the group semantics of a Node: how its children combine
// into the node's own normalized value.
type Kind int

const (
	// KindAnd requires every child to be true ("And" group, e.g. FD/FDAnd).
	KindAnd Kind = iota
	// KindOr requires at least one child to be true.
	KindOr
	// KindXor requires exactly one child to be true.
	KindXor
	// KindAny always succeeds; children are independently optional.
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindXor:
		return "Xor"
	case KindAny:
		return "Any"
	default:
		return "?"
	}
}

// Attr is an attribute declaration attached to a Node: a name and the
// domain its value must satisfy. Its identity (pointer) is what a
// resolved Var referencing it, and a Product key naming it, hold.
type Attr struct {
	Name   string
	Domain Domain
}

// NewAttr declares an attribute named name with the given domain. Pass
// Attr values as positional arguments to FDAnd/FDOr/FDXor/FDAny.
func NewAttr(name string, domain Domain) *Attr {
	return &Attr{Name: name, Domain: domain}
}

// ProductNormalizer rewrites a raw partial product before its keys are
// resolved against a model's lookup index, e.g. to translate some
// caller-specific shorthand into the feature/attribute names the model
// declares. See SetProductNormalization and SetDefaultProductNormalization.
type ProductNormalizer func(n *Node, product map[string]interface{}) map[string]interface{}

var defaultProductNormalization ProductNormalizer

// SetDefaultProductNormalization installs a process-wide normalization
// hook. Each Node takes the default in effect when it is constructed;
// Nodes constructed earlier keep the hook they already have. A per-Node
// hook set via SetProductNormalization takes precedence; if neither is
// set, partials are ingested unchanged.
func SetDefaultProductNormalization(f ProductNormalizer) {
	defaultProductNormalization = f
}

// Node is a feature-diagram node: a tree with a name (or none, for
// anonymous structural nodes), child Nodes, attached cross-tree
// constraints, typed attributes, and a group Kind governing how its
// content combines into the node's own value.
type Node struct {
	kind     Kind
	name     string
	named    bool
	children []*Node
	ctcs     []Expr
	attrs    []*Attr
	norm     ProductNormalizer

	// populated by Check, valid only at the root
	lookup   map[string][]lookupEntry
	domain   map[interface{}]string
	declErrs *DeclErrors
}

// Name returns the node's name, or "" if it is anonymous.
func (n *Node) Name() string { return n.name }

// Named reports whether the node was given an explicit name.
func (n *Node) Named() bool { return n.named }

// Children returns the node's sub-features in declaration order.
func (n *Node) Children() []*Node { return n.children }

// CrossTreeConstraints returns the expressions attached to this node.
func (n *Node) CrossTreeConstraints() []Expr { return n.ctcs }

// Attributes returns the attribute declarations attached to this node.
func (n *Node) Attributes() []*Attr { return n.attrs }

// HasAttributes reports whether the node declares any attribute.
func (n *Node) HasAttributes() bool { return len(n.attrs) != 0 }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Kind returns the node's group kind.
func (n *Node) Kind() Kind { return n.kind }

// SetProductNormalization installs a normalization hook for this Node
// only, overriding the process-wide default.
func (n *Node) SetProductNormalization(f ProductNormalizer) {
	n.norm = f
}

func (n *Node) String() string {
	if n.named {
		return n.name
	}
	return "<anonymous>"
}

func newNode(kind Kind, args []interface{}) *Node {
	n := &Node{kind: kind, norm: defaultProductNormalization}
	start := 0
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			n.name = s
			n.named = true
			start = 1
		}
	}
	for _, el := range args[start:] {
		switch x := el.(type) {
		case *Node:
			n.children = append(n.children, x)
		case Expr:
			n.ctcs = append(n.ctcs, x)
		case *Attr:
			n.attrs = append(n.attrs, x)
		default:
			panic(fmt.Sprintf("fm: unexpected FD subtree (found type %T)", el))
		}
	}
	n.clean()
	return n
}

// FDAnd builds an And-group feature: every child, attribute and
// cross-tree constraint must hold for the group itself to be true. The
// first positional string argument, if any, names the node; remaining
// arguments may be *Node children, Expr cross-tree constraints, or *Attr
// attribute declarations, in any order.
func FDAnd(args ...interface{}) *Node { return newNode(KindAnd, args) }

// FDOr builds an Or-group feature: at least one child/attribute/ctc must
// hold. See FDAnd for argument conventions.
func FDOr(args ...interface{}) *Node { return newNode(KindOr, args) }

// FDXor builds a Xor-group feature: exactly one child/attribute/ctc must
// hold. See FDAnd for argument conventions.
func FDXor(args ...interface{}) *Node { return newNode(KindXor, args) }

// FDAny builds an Any-group feature: any subset of children is allowed;
// the group itself is always satisfied. See FDAnd for argument
// conventions.
func FDAny(args ...interface{}) *Node { return newNode(KindAny, args) }

// FD is an alias for FDAnd.
func FD(args ...interface{}) *Node { return FDAnd(args...) }

// clean discards this node's derived root-only state so a new Check can
// run. It is idempotent.
func (n *Node) clean() {
	n.lookup = nil
	n.domain = nil
	n.declErrs = nil
}

// Clean discards the checked model's lookup index, domain map and
// accumulated declaration errors, allowing Check to be run again (e.g.
// after mutating the tree through other means).
func (n *Node) Clean() {
	n.clean()
}

// Check resolves every textual reference in the tree (feature/attribute
// names in cross-tree constraints) against a freshly built lookup index,
// and returns the accumulated declaration errors. It is idempotent: a
// second call on an already-checked root is a no-op returning the same
// accumulator. Check must be called on the root before Eval or
// NfProduct.
func (n *Node) Check() *DeclErrors {
	return n.generateLookup()
}

func (n *Node) generateLookup() *DeclErrors {
	if n.lookup == nil {
		n.declErrs = NewDeclErrors()
		n.lookup = map[string][]lookupEntry{}
		n.domain = map[interface{}]string{}
		n.generateLookupRec(nil, 0, n.lookup, n.domain, n.declErrs)
	}
	return n.declErrs
}

func (n *Node) generateLookupRec(pathToSelf []string, idx int, lookup map[string][]lookupEntry, dom map[interface{}]string, errs *DeclErrors) {
	seg := n.name
	if !n.named {
		seg = fmt.Sprint(idx)
	}
	pathToSelf = append(pathToSelf, seg)
	localPath := append([]string{}, pathToSelf...)

	if n.named {
		checkDuplicate(n, n.name, localPath, lookup, errs)
		dom[n] = PathToString(localPath)
	}

	for i, sub := range n.children {
		sub.generateLookupRec(pathToSelf, i, lookup, dom, errs)
	}

	for _, att := range n.attrs {
		checkDuplicate(att, att.Name, localPath, lookup, errs)
		dom[att] = PathToString(append(append([]string{}, localPath...), att.Name))
	}

	for i, ctc := range n.ctcs {
		n.ctcs[i] = ctc.resolve(localPath, lookup, errs)
	}
}

func checkDuplicate(el interface{}, name string, path []string, lookup map[string][]lookupEntry, errs *DeclErrors) {
	existing, ok := lookup[name]
	if ok {
		var conflicting []string
		for _, e := range existing {
			if PathIncludes(path, e.path) {
				conflicting = append(conflicting, PathToString(e.path))
			}
		}
		if len(conflicting) > 0 {
			errs.AddAmbiguous(name, PathToString(path), conflicting)
		}
	}
	lookup[name] = append(lookup[name], lookupEntry{ref: el, path: path})
}

// updater returns the ref, rewritten to its canonical path string when it
// is a known node or attribute identity of this (checked) model.
func (n *Node) updater(ref interface{}) interface{} {
	if p, ok := n.domain[ref]; ok {
		return p
	}
	return ref
}

// NfConstraint coerces c to an expression and resolves its references
// against the root's lookup index, returning the resolved expression and
// any declaration errors encountered. n must already be checked.
func (n *Node) NfConstraint(c interface{}) (Expr, *DeclErrors) {
	if n.lookup == nil {
		panic("fm: a non-root feature cannot put a constraint in normal form")
	}
	errs := NewDeclErrors()
	expr := coerce(c)
	expr = expr.resolve(PathFromString(n.domain[n]), n.lookup, errs)
	return expr, errs
}
