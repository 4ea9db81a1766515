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

// Program fmlint checks a feature model and evaluates a candidate product
// against it, printing any declaration errors and the evaluation verdict.
//
// Usage: fmlint [--set KEY=VALUE ...] [--expect-false]
//
// fmlint builds a small demonstration feature model (a "HelloWorld"
// model with a language choice and an optional repeat count) so the tool
// has something to check without requiring a model file format, which
// the core library does not define. Each --set flag supplies one key of
// the candidate product; KEY names a feature or attribute declared in the
// model and VALUE is parsed as a bool, int, float or, failing those, kept
// as a string.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/openconfig/fm/pkg/fm"
	"github.com/openconfig/fm/pkg/indent"
	"github.com/pborman/getopt"
)

// exitIfError writes errs to standard error and exits with status 1. If
// errs is empty, exitIfError does nothing.
func exitIfError(errs []error) {
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		stop(1)
	}
}

var stop = os.Exit

// language enumerates the demonstration model's lang_v attribute values.
type language int

const (
	english language = iota
	french
	german
)

func (l language) EnumValues() []interface{} {
	return []interface{}{english, french, german}
}

// helloWorld builds the demonstration model: a top-level feature requiring
// a chosen language and allowing an optional repeat count.
func helloWorld() *fm.Node {
	return fm.FD("HelloWorld",
		fm.FDAnd(fm.FD("lang", fm.NewAttr("lang_v", fm.Enum(language(0))))),
		fm.FDAny(fm.FD("times", fm.NewAttr("times_v", fm.Int(fm.Range(0, nil))))),
	)
}

func parseValue(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func main() {
	var sets []string
	var expectFalse bool
	getopt.ListVarLong(&sets, "set", 0, "KEY=VALUE entries for the candidate product", "KEY=VALUE")
	getopt.BoolVarLong(&expectFalse, "expect-false", 0, "evaluate expecting the model to be false rather than true")
	getopt.Parse()

	model := helloWorld()
	declErrs := model.Check()
	exitIfError(declErrs.Errs())

	partial := map[string]interface{}{}
	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid --set %q, want KEY=VALUE\n", kv)
			stop(1)
		}
		partial[k] = parseValue(v)
	}

	product, nfErrs := model.NfProduct(partial)
	exitIfError(nfErrs.Errs())

	res := model.Eval(product, !expectFalse)
	fmt.Printf("value: %v\n", res.Value)
	if res.Reason.Bool() {
		w := indent.NewWriter(os.Stdout, "  ")
		fmt.Fprintln(w, res.Reason.String())
		stop(1)
	}
}
