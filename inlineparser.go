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

import "unicode/utf8"

// An InlineRule recognizes one inline-level construct starting at
// state.Pos(). When silent is true, the rule must not mutate state or the
// tree; [InlineParser.SkipToken] relies on this to look ahead without
// committing. When silent is false and the rule matches, it must advance
// state.Pos() by at least one byte; a rule that accepts without advancing
// is a programming error (spec §4.d).
type InlineRule interface {
	Run(state *InlineState, silent bool) bool
}

// An InlinePostRule runs once after the primary inline pass completes
// (spec §4.d), in the post ruler's resolved order. [pairDelimitersRule] is
// registered BeforeAll by every [InlineParser] so that marker-specific
// post rules (emphasis, strikethrough, ...) can rely on
// [InlineState.Delimiters] already being paired.
type InlinePostRule interface {
	Run(state *InlineState)
}

// InlineParser runs a primary [Ruler][InlineRule] and a post
// [Ruler][InlinePostRule] over an [InlineState] (spec §4.d).
type InlineParser struct {
	primary *Ruler[InlineRule]
	post    *Ruler[InlinePostRule]
}

func newInlineParser() *InlineParser {
	p := &InlineParser{
		primary: NewRuler[InlineRule](),
		post:    NewRuler[InlinePostRule](),
	}
	p.post.Add("delimiter_pairing", pairDelimitersRule{}).BeforeAll()
	return p
}

// Primary returns the parser's primary rule chain.
func (ip *InlineParser) Primary() *Ruler[InlineRule] { return ip.primary }

// Post returns the parser's post rule chain.
func (ip *InlineParser) Post() *Ruler[InlinePostRule] { return ip.post }

// Tokenize runs the inline-level loop of spec §4.d over state: it tries
// the primary rules in order at each position, falls back to
// accumulating one UTF-8 character of pending text when none accept,
// switches to a raw-text fallback once nesting reaches MaxNesting, then
// flushes pending text and runs every post rule.
func (ip *InlineParser) Tokenize(state *InlineState) {
	rules := ip.primary.MustRules()
	for state.pos < state.posMax {
		if state.nesting >= state.maxNesting {
			state.PendingAppend(string(state.src[state.pos:state.posMax]))
			state.pos = state.posMax
			break
		}

		start := state.pos
		matched := false
		for _, r := range rules {
			if r.Run(state, false) {
				matched = true
				break
			}
		}
		if matched {
			if state.pos <= start {
				panicRuleDidNotAdvance("inline")
			}
			continue
		}

		_, size := utf8.DecodeRune(state.src[state.pos:state.posMax])
		if size <= 0 {
			size = 1
		}
		state.PendingAppend(string(state.src[state.pos : state.pos+size]))
		state.pos += size
	}
	state.FlushPending()

	for _, r := range ip.post.MustRules() {
		r.Run(state)
	}
}

// TokenizePrimaryRange runs only the primary rule loop of [InlineParser.Tokenize]
// over state, bounded above by end instead of state's own PosMax, without
// flushing pending text or running post rules. A link or image rule uses
// this to parse its own label text as a nested sub-run that shares the
// enclosing run's pending-text accumulator and delimiter list, so that a
// delimiter opened outside a link and closed inside it (or vice versa) is
// still available to the single post pass that runs once the whole
// top-level Tokenize call completes.
func (ip *InlineParser) TokenizePrimaryRange(state *InlineState, end int) {
	savedMax := state.posMax
	state.posMax = end
	rules := ip.primary.MustRules()
	for state.pos < state.posMax {
		if state.nesting >= state.maxNesting {
			state.PendingAppend(string(state.src[state.pos:state.posMax]))
			state.pos = state.posMax
			break
		}

		start := state.pos
		matched := false
		for _, r := range rules {
			if r.Run(state, false) {
				matched = true
				break
			}
		}
		if matched {
			if state.pos <= start {
				panicRuleDidNotAdvance("inline")
			}
			continue
		}

		_, size := utf8.DecodeRune(state.src[state.pos:state.posMax])
		if size <= 0 {
			size = 1
		}
		state.PendingAppend(string(state.src[state.pos : state.pos+size]))
		state.pos += size
	}
	state.posMax = savedMax
}

// SkipToken runs the primary rules once in silent mode at state's current
// position and advances state.Pos() past the match, or past one UTF-8
// character when no rule accepts. Results are memoized per starting
// position in state.skipCache. No node is emitted.
//
// On nesting overflow, SkipToken jumps state.Pos() directly to PosMax
// rather than scanning token by token -- a deliberate, preserved
// trade-off (spec §4.d) that can mis-parse a link whose bracket depth is
// exactly MaxNesting+1. It is not "fixed" here because the teacher this
// engine is descended from documents the same limitation rather than
// papering over it.
func (ip *InlineParser) SkipToken(state *InlineState) {
	start := state.pos
	if next, ok := state.cachedSkip(start); ok {
		state.pos = next
		return
	}

	if state.nesting >= state.maxNesting {
		state.pos = state.posMax
		state.setCachedSkip(start, state.pos)
		return
	}

	state.nesting++
	matched := false
	for _, r := range ip.primary.MustRules() {
		if r.Run(state, true) {
			matched = true
			break
		}
	}
	state.nesting--

	if !matched {
		_, size := utf8.DecodeRune(state.src[state.pos:state.posMax])
		if size <= 0 {
			size = 1
		}
		state.pos += size
	}
	state.setCachedSkip(start, state.pos)
}

// pairDelimitersRule is the engine-provided post rule that resolves
// state.Delimiters() in place via [PairDelimiters], grouped by marker so
// that distinct marker families (e.g. "*" and "_") never pair against
// each other. It also links each matched pair's two runs through
// [DelimRun.Partner], since [PairDelimiters]'s own End field is an index
// into the per-marker group this rule builds internally, not into
// state.Delimiters() as a whole -- a marker-specific post rule that
// wants its match results back has no other way to interpret End.
type pairDelimitersRule struct{}

func (pairDelimitersRule) Run(state *InlineState) {
	delims := state.Delimiters()
	if len(delims) == 0 {
		return
	}
	byMarker := make(map[rune][]*DelimRun)
	for _, d := range delims {
		byMarker[d.Marker] = append(byMarker[d.Marker], d)
	}
	for _, group := range byMarker {
		PairDelimiters(group)
		for _, d := range group {
			if d.End >= 0 {
				d.Partner = group[d.End]
				d.Partner.Partner = d
			}
		}
	}
}
