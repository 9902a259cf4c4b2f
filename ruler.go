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

import "sort"

// A Ruler is a named, dependency-ordered collection of rules of type T.
// It is the generic machinery behind the core, block, and inline rule
// chains: each chain is a distinct Ruler instantiation
// (Ruler[CoreRule], Ruler[BlockRule], Ruler[InlineRule]).
//
// Rule identity is the Go type of the rule value, not its display name
// (see RuleID), so two unrelated plugins can register rules with the same
// human-readable name without colliding.
type Ruler[T any] struct {
	items []*ruleItem[T]
	byID  map[RuleID]*ruleItem[T]

	cacheValid bool
	cacheOrder []T
	cacheErr   error
}

type ruleItem[T any] struct {
	id       RuleID
	name     string
	rule     T
	enabled  bool
	before   []RuleID
	after    []RuleID
	beforeAll bool
	afterAll  bool
	aliases  []RuleID
	requires []RuleID
	seq      int // insertion order, used to break ties
}

// NewRuler returns an empty Ruler.
func NewRuler[T any]() *Ruler[T] {
	return &Ruler[T]{byID: make(map[RuleID]*ruleItem[T])}
}

// RuleBuilder adjusts the positioning of a rule that was just added to a
// Ruler. Its methods mutate the ruler's constraint graph and invalidate
// the ruler's cached order, so the next call to [Ruler.Rules] recomputes
// the resolved chain.
type RuleBuilder[T any] struct {
	ruler *Ruler[T]
	item  *ruleItem[T]
}

// Before constrains the rule to run before the rule identified by id.
func (b *RuleBuilder[T]) Before(id RuleID) *RuleBuilder[T] {
	b.item.before = append(b.item.before, id)
	b.ruler.cacheValid = false
	return b
}

// After constrains the rule to run after the rule identified by id.
func (b *RuleBuilder[T]) After(id RuleID) *RuleBuilder[T] {
	b.item.after = append(b.item.after, id)
	b.ruler.cacheValid = false
	return b
}

// BeforeAll pins the rule to run before every rule not itself pinned
// BeforeAll.
func (b *RuleBuilder[T]) BeforeAll() *RuleBuilder[T] {
	b.item.beforeAll = true
	b.ruler.cacheValid = false
	return b
}

// AfterAll pins the rule to run after every rule not itself pinned
// AfterAll.
func (b *RuleBuilder[T]) AfterAll() *RuleBuilder[T] {
	b.item.afterAll = true
	b.ruler.cacheValid = false
	return b
}

// Alias registers an additional id that other rules' Before/After/Require
// constraints may use to refer to this rule. This lets a plugin replace a
// built-in rule (by registering under the built-in's id as an alias)
// without every other rule's constraints needing to change.
func (b *RuleBuilder[T]) Alias(id RuleID) *RuleBuilder[T] {
	b.item.aliases = append(b.item.aliases, id)
	b.ruler.cacheValid = false
	return b
}

// Require declares that the rule identified by id must be present and
// enabled. [Ruler.Rules] reports a [MissingRequirementError] otherwise.
func (b *RuleBuilder[T]) Require(id RuleID) *RuleBuilder[T] {
	b.item.requires = append(b.item.requires, id)
	b.ruler.cacheValid = false
	return b
}

// Add registers rule under the identity of its own Go type (see [ID]) and
// returns a builder for adjusting its position in the chain. name is used
// only for diagnostics (the [CycleError] and [MissingRequirementError] a
// [ConfigError] wraps); it need not be unique.
func (r *Ruler[T]) Add(name string, rule T) *RuleBuilder[T] {
	item := &ruleItem[T]{
		id:      idOf(rule),
		name:    name,
		rule:    rule,
		enabled: true,
		seq:     len(r.items),
	}
	r.items = append(r.items, item)
	r.byID[item.id] = item
	r.cacheValid = false
	return &RuleBuilder[T]{ruler: r, item: item}
}

// Enable enables or disables the rule identified by id. It panics if no
// rule with that id has been added.
func (r *Ruler[T]) Enable(id RuleID, enabled bool) {
	item, ok := r.byID[id]
	if !ok {
		panic("mdit: Enable: no such rule")
	}
	item.enabled = enabled
	r.cacheValid = false
}

// Has reports whether a rule with the given id has been added (regardless
// of whether it is currently enabled).
func (r *Ruler[T]) Has(id RuleID) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *Ruler[T]) matches(item *ruleItem[T], id RuleID) bool {
	if item.id == id {
		return true
	}
	for _, a := range item.aliases {
		if a == id {
			return true
		}
	}
	return false
}

func (r *Ruler[T]) find(id RuleID) *ruleItem[T] {
	for _, item := range r.items {
		if r.matches(item, id) {
			return item
		}
	}
	return nil
}

// Rules returns the enabled rules of the ruler in resolved dependency
// order. The result is cached until the ruler is next mutated by Add,
// Enable, or a [RuleBuilder] method.
func (r *Ruler[T]) Rules() ([]T, error) {
	if r.cacheValid {
		return r.cacheOrder, r.cacheErr
	}
	order, err := r.compile()
	r.cacheOrder, r.cacheErr, r.cacheValid = order, err, true
	return order, err
}

// MustRules is like Rules but panics on error. It is used internally by
// components (the block parser, the inline parser, the core chain) that
// treat a broken rule configuration as a programming error rather than a
// runtime condition a caller should recover from.
func (r *Ruler[T]) MustRules() []T {
	rules, err := r.Rules()
	if err != nil {
		panic(err)
	}
	return rules
}

func (r *Ruler[T]) compile() ([]T, error) {
	var head, mid, tail []*ruleItem[T]
	for _, item := range r.items {
		if !item.enabled {
			continue
		}
		switch {
		case item.beforeAll:
			head = append(head, item)
		case item.afterAll:
			tail = append(tail, item)
		default:
			mid = append(mid, item)
		}
	}

	enabled := make([]*ruleItem[T], 0, len(head)+len(mid)+len(tail))
	enabled = append(enabled, head...)
	enabled = append(enabled, mid...)
	enabled = append(enabled, tail...)
	if err := r.checkRequirements(enabled); err != nil {
		return nil, err
	}

	sortedHead, err := r.topoSort(head)
	if err != nil {
		return nil, err
	}
	sortedMid, err := r.topoSort(mid)
	if err != nil {
		return nil, err
	}
	sortedTail, err := r.topoSort(tail)
	if err != nil {
		return nil, err
	}

	all := make([]*ruleItem[T], 0, len(sortedHead)+len(sortedMid)+len(sortedTail))
	all = append(all, sortedHead...)
	all = append(all, sortedMid...)
	all = append(all, sortedTail...)

	rules := make([]T, len(all))
	for i, item := range all {
		rules[i] = item.rule
	}
	return rules, nil
}

func (r *Ruler[T]) checkRequirements(bucket []*ruleItem[T]) error {
	for _, item := range bucket {
		for _, req := range item.requires {
			found := false
			for _, other := range bucket {
				if r.matches(other, req) {
					found = true
					break
				}
			}
			if !found {
				reqName := req.String()
				if other := r.find(req); other != nil {
					reqName = other.name
				}
				return &MissingRequirementError{Rule: item.name, Required: reqName}
			}
		}
	}
	return nil
}

// topoSort performs a stable Kahn's-algorithm topological sort of bucket,
// using Before/After edges (resolved through aliases) and breaking ties
// by insertion order, per spec §4.a.
func (r *Ruler[T]) topoSort(bucket []*ruleItem[T]) ([]*ruleItem[T], error) {
	n := len(bucket)
	if n == 0 {
		return nil, nil
	}
	indexOf := make(map[*ruleItem[T]]int, n)
	for i, item := range bucket {
		indexOf[item] = i
	}

	// edges[i] lists indices that must come after i.
	edges := make([][]int, n)
	indegree := make([]int, n)
	addEdge := func(before, after int) {
		edges[before] = append(edges[before], after)
		indegree[after]++
	}

	matchIndices := func(id RuleID) []int {
		var out []int
		for i, item := range bucket {
			if r.matches(item, id) {
				out = append(out, i)
			}
		}
		return out
	}

	for i, item := range bucket {
		for _, id := range item.before {
			for _, j := range matchIndices(id) {
				if j != i {
					addEdge(i, j)
				}
			}
		}
		for _, id := range item.after {
			for _, j := range matchIndices(id) {
				if j != i {
					addEdge(j, i)
				}
			}
		}
	}

	available := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			available = append(available, i)
		}
	}

	result := make([]*ruleItem[T], 0, n)
	visited := make([]bool, n)
	for len(result) < n {
		if len(available) == 0 {
			return nil, r.cycleError(bucket, indegree)
		}
		sort.Ints(available)
		pick := available[0]
		available = available[1:]
		if visited[pick] {
			continue
		}
		visited[pick] = true
		result = append(result, bucket[pick])
		for _, j := range edges[pick] {
			indegree[j]--
			if indegree[j] == 0 {
				available = append(available, j)
			}
		}
	}
	return result, nil
}

func (r *Ruler[T]) cycleError(bucket []*ruleItem[T], indegree []int) *CycleError {
	var names []string
	for i, item := range bucket {
		if indegree[i] > 0 {
			names = append(names, item.name)
		}
	}
	return &CycleError{Chain: names}
}
