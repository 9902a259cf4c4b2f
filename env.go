// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mdit

// Scope selects which of an [Env]'s four stacks a piece of state lives in.
// Block and BlockLevel state persist for the whole document and a single
// block respectively; Inline and InlineLevel are their inline-pass
// counterparts. This mirrors the four-scope design described in spec §3's
// Env section.
type Scope int

const (
	// ScopeBlock holds state for the entire document's block pass.
	ScopeBlock Scope = iota
	// ScopeBlockLevel holds state scoped to one container block (reset on
	// every StatePush/StatePop bracketing a nested block).
	ScopeBlockLevel
	// ScopeInline holds state for the entire document's inline pass.
	ScopeInline
	// ScopeInlineLevel holds state scoped to one inline container (reset
	// on every StatePush/StatePop around an inline tokenize call).
	ScopeInlineLevel
)

type envBag map[RuleID]any

// Env is a stack of heterogeneous per-scope state bags, keyed by the Go
// type of the value stored. It lets cooperating rules (a reference
// collector, a delimiter list, a backtick-length cache) share data across
// passes without resorting to package-level globals, and it guarantees
// that state never outlives the scope that pushed it (spec §3, §9).
type Env struct {
	stacks [4][]envBag
}

// NewEnv returns an Env with one frame open on every scope, ready for use
// for the duration of a single [Parser.Parse] call.
func NewEnv() *Env {
	e := &Env{}
	for s := range e.stacks {
		e.stacks[s] = []envBag{make(envBag)}
	}
	return e
}

// StatePush opens a new frame on the given scope's stack. Lookups via
// [Get] and [GetOrInsert] after StatePush see only state stored after the
// push, until the matching [Env.StatePop].
func (e *Env) StatePush(scope Scope) {
	e.stacks[scope] = append(e.stacks[scope], make(envBag))
}

// StatePop discards the top frame of the given scope's stack. It panics
// if the scope's stack would become empty, since every scope must always
// have at least its document-level frame.
func (e *Env) StatePop(scope Scope) {
	s := e.stacks[scope]
	if len(s) <= 1 {
		panic("mdit: Env.StatePop: scope has no pushed frame to pop")
	}
	e.stacks[scope] = s[:len(s)-1]
}

func (e *Env) top(scope Scope) envBag {
	s := e.stacks[scope]
	return s[len(s)-1]
}

// Get retrieves the value of type V stored at the top frame of scope, and
// reports whether it was present. All of Get, [GetOrInsert], and [Set] for
// the same V and scope address the same slot, boxed behind a *V internally
// so that GetOrInsert can hand out a stable mutable pointer.
func Get[V any](e *Env, scope Scope) (V, bool) {
	bag := e.top(scope)
	v, ok := bag[ID[V]()]
	if !ok {
		var zero V
		return zero, false
	}
	return *v.(*V), true
}

// GetOrInsert retrieves the value of type V stored at the top frame of
// scope, inserting and returning a pointer to the zero value of V if none
// was present. Rules use this to lazily initialize shared per-pass state
// (e.g. the delimiter-run list) the first time they run, and to mutate it
// in place thereafter.
func GetOrInsert[V any](e *Env, scope Scope) *V {
	bag := e.top(scope)
	id := ID[V]()
	v, ok := bag[id]
	if !ok {
		nv := new(V)
		bag[id] = nv
		return nv
	}
	return v.(*V)
}

// Set stores value at the top frame of scope, keyed by its type.
func Set[V any](e *Env, scope Scope, value V) {
	bag := e.top(scope)
	bag[ID[V]()] = &value
}
