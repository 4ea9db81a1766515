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

// ivd ("is true, with provenance") records the last value written for a
// node or attribute identity during normalization, and the index of the
// partial that wrote it. Ties are broken by iteration/write order, which
// is what makes "later overrides earlier" hold.
type ivd struct {
	val interface{}
	idx int
}

// NfProduct completes one or more partial products (each keyed by the
// feature/attribute names declared in the model) according to the group
// semantics of the tree rooted at n, which must already be checked. A
// later partial overrides an earlier one on the same key. It returns the
// result keyed by resolved node/attribute identity plus any declaration
// errors hit while resolving string keys.
func (n *Node) NfProduct(partials ...map[string]interface{}) (Product, *DeclErrors) {
	if n.lookup == nil {
		panic("fm: a non-root feature cannot put a product in normal form")
	}
	errs := NewDeclErrors()
	isTrueD := map[interface{}]ivd{}
	for i, p := range partials {
		for k, v := range n.normalizeProduct(p, errs) {
			isTrueD[k] = ivd{val: v, idx: i}
		}
	}
	n.makeProductRec1(isTrueD)

	res := Product{}
	if v, ok := isTrueD[interface{}(n)]; ok {
		n.makeProductRec2(v.val, isTrueD, res)
	} else {
		n.makeProductRec2(false, isTrueD, res)
	}
	return res, errs
}

// CombineProduct is sugar over NfProduct: it flattens the result to a
// plain map keyed by the declared (bare) name of each named feature
// (selected or not, with its Boolean value) and of each attribute kept
// by normalization, dropping the model's anonymous structural nodes and
// the declaration-error channel. It is the Go analogue of the
// reference implementation's combine_product helper.
func (n *Node) CombineProduct(partials ...map[string]interface{}) map[string]interface{} {
	resolved, _ := n.NfProduct(partials...)
	out := make(map[string]interface{}, len(resolved))
	for key, val := range resolved {
		switch k := key.(type) {
		case *Node:
			if k.named {
				out[k.name] = val
			}
		case *Attr:
			out[k.Name] = val
		}
	}
	return out
}

func (n *Node) normalizeProduct(product map[string]interface{}, errs *DeclErrors) map[interface{}]interface{} {
	p := product
	if n.norm != nil {
		p = n.norm(n, product)
	}
	res := make(map[interface{}]interface{}, len(p))
	for key, val := range p {
		res[checkExists(key, n.lookup, errs, nil)] = val
	}
	return res
}

// extractLatest returns the provenance index and value of whichever
// member of domain was written most recently in isTrueD, with no
// filtering on value. Used by the And group, which needs a single
// representative value shared by the node and all its children.
func extractLatest(isTrueD map[interface{}]ivd, domain []interface{}) (int, interface{}) {
	idx := -1
	value := interface{}(Unset)
	for _, sub := range domain {
		v, ok := isTrueD[sub]
		if !ok {
			continue
		}
		if v.idx > idx {
			idx = v.idx
			value = v.val
		}
	}
	return idx, value
}

// extractTrueAt returns the highest provenance index at which any member
// of domain was written true, and the raw (possibly Unset) value
// recorded for every member. Used by Or/Any/Xor, whose own value is
// forced true if any child was selected more recently than the group's
// own last write.
func extractTrueAt(isTrueD map[interface{}]ivd, domain []interface{}) (int, []interface{}) {
	idx := -1
	values := make([]interface{}, len(domain))
	for i, sub := range domain {
		v, ok := isTrueD[sub]
		if !ok {
			values[i] = Unset
			continue
		}
		values[i] = v.val
		if b, isBool := v.val.(bool); isBool && b && v.idx > idx {
			idx = v.idx
		}
	}
	return idx, values
}

// inferSV computes (provenance index, this node's inferred value, each
// child's inferred value) from the current normalization state, applying
// each group kind's own inference rule.
func (n *Node) inferSV(isTrueD map[interface{}]ivd) (int, interface{}, []interface{}) {
	switch n.kind {
	case KindAnd:
		domain := make([]interface{}, 0, len(n.children)+1)
		domain = append(domain, interface{}(n))
		for _, c := range n.children {
			domain = append(domain, interface{}(c))
		}
		idx, value := extractLatest(isTrueD, domain)
		getDefault := func(el interface{}) interface{} {
			if v, ok := isTrueD[el]; ok && v.idx >= idx {
				return v.val
			}
			return value
		}
		vLocal := getDefault(n)
		vSubs := make([]interface{}, len(n.children))
		for i, c := range n.children {
			vSubs[i] = getDefault(c)
		}
		return idx, vLocal, vSubs

	default: // KindOr, KindAny, KindXor
		domain := make([]interface{}, len(n.children))
		for i, c := range n.children {
			domain[i] = interface{}(c)
		}
		idxSubs, vSubs := extractTrueAt(isTrueD, domain)

		vLocal := interface{}(false)
		idxLocal := -1
		if v, ok := isTrueD[interface{}(n)]; ok {
			vLocal, idxLocal = v.val, v.idx
		}
		if idxSubs > idxLocal {
			idxLocal, vLocal = idxSubs, true
		}

		if n.kind == KindXor && idxSubs > -1 {
			vSubs = make([]interface{}, len(n.children))
			for i, c := range n.children {
				v, ok := isTrueD[interface{}(c)]
				if b, isBool := v.val.(bool); ok && isBool && b && v.idx == idxSubs {
					vSubs[i] = true
				} else {
					vSubs[i] = false
				}
			}
		}
		return idxLocal, vLocal, vSubs
	}
}

func (n *Node) makeProductUpdate(isTrueD map[interface{}]ivd, idx int, vLocal interface{}, vSubs []interface{}) {
	if vLocal != Unset {
		isTrueD[n] = ivd{val: vLocal, idx: idx}
	}
	for i, c := range n.children {
		if vSubs[i] != Unset {
			isTrueD[c] = ivd{val: vSubs[i], idx: idx}
		}
	}
}

// makeProductRec1 is pass 1: infer, write back, recurse into children,
// then re-infer on the way back up so a child's own writes can refine its
// parent's inference.
func (n *Node) makeProductRec1(isTrueD map[interface{}]ivd) {
	idx, vLocal, vSubs := n.inferSV(isTrueD)
	n.makeProductUpdate(isTrueD, idx, vLocal, vSubs)
	for _, c := range n.children {
		c.makeProductRec1(isTrueD)
	}
	idx, vLocal, vSubs = n.inferSV(isTrueD)
	n.makeProductUpdate(isTrueD, idx, vLocal, vSubs)
}

// makeProductRec2 is pass 2: materialize a concrete value for every node,
// carrying the parent's inferred value down, and include the attributes
// of nodes that end up selected.
func (n *Node) makeProductRec2(vLocal interface{}, isTrueD map[interface{}]ivd, res Product) {
	_, _, vSubs := n.inferSV(isTrueD)
	res[n] = vLocal
	for i, c := range n.children {
		if vSubs[i] == Unset {
			c.makeProductRec2(false, isTrueD, res)
		} else {
			c.makeProductRec2(vSubs[i], isTrueD, res)
		}
	}
	if truthy(vLocal) {
		for _, a := range n.attrs {
			if v, ok := isTrueD[interface{}(a)]; ok {
				res[a] = v.val
			}
		}
	}
}
