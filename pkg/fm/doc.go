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

// Package fm implements the core of a feature-model engine: a tree of
// optional/alternative features (a feature diagram) with typed
// attributes and cross-tree constraints, a checker that resolves
// textual references into a lookup index, an evaluator that checks a
// product against the model and explains failures with a reason tree,
// and a normalizer that completes partial products from group
// semantics.
//
// The entry point is a *Node tree built with FDAnd, FDOr, FDXor and
// FDAny. Call Check on the root once before Eval or NfProduct.
package fm
