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

import "strings"

// InlineState is the mutable object inline rules read and mutate while the
// [InlineParser] walks one inline run. An InlineState is created fresh for
// each [InlineContainerPayload] node the core chain's inline pass
// encounters (spec §3); link and image rules parse their link text with
// the same InlineState, through [Parser.TokenizeInlineRange].
type InlineState struct {
	parser *Parser
	src    []byte // the full inline run's source
	pos    int
	posMax int

	pending strings.Builder

	delimiters []*DelimRun

	// tokenSeq counts nodes landed in the tree so far, so delimiter-
	// producing rules can stamp a DelimRun's TokenIndex with the position
	// of its backing text node in that sequence (spec §4.e).
	tokenSeq int

	// skipCache memoizes pos -> next_pos results from SkipToken lookaheads
	// keyed by the position lookahead started at, per spec §4.d.
	skipCache map[int]int

	linkNesting int

	nesting    int
	maxNesting int

	parent      *Node
	parentStack []*Node

	env *Env

	// baseOffsets lets inline rules recover a source line number for a
	// byte offset into src, for srcmap purposes.
	baseOffsets []LineOffset
}

func newInlineState(parser *Parser, container *InlineContainerPayload, parent *Node, env *Env) *InlineState {
	return &InlineState{
		parser:      parser,
		src:         []byte(container.Source),
		posMax:      len(container.Source),
		maxNesting:  parser.options.MaxNesting,
		parent:      parent,
		env:         env,
		skipCache:   make(map[int]int),
		baseOffsets: container.LineOffsets,
	}
}

// Parser returns the owning [Parser].
func (s *InlineState) Parser() *Parser { return s.parser }

// Env returns the shared scoped-state environment for this parse.
func (s *InlineState) Env() *Env { return s.env }

// Src returns the full source of the inline run being tokenized.
func (s *InlineState) Src() []byte { return s.src }

// Pos returns the current cursor position, a byte offset into Src.
func (s *InlineState) Pos() int { return s.pos }

// SetPos moves the cursor.
func (s *InlineState) SetPos(pos int) { s.pos = pos }

// PosMax returns the exclusive upper bound of the region being tokenized.
func (s *InlineState) PosMax() int { return s.posMax }

// LineAt returns the source line number corresponding to byte offset off
// within Src.
func (s *InlineState) LineAt(off int) int {
	line := 0
	for _, lo := range s.baseOffsets {
		if lo.Offset > off {
			break
		}
		line = lo.Line
	}
	return line
}

// PendingAppend appends to the pending-text accumulator, the buffer that
// [InlineParser.Tokenize]'s character-at-a-time fallback and simple text
// rules write into; it is flushed to a [TextPayload] node the next time a
// non-text node is appended or the tokenizer loop ends.
func (s *InlineState) PendingAppend(text string) {
	s.pending.WriteString(text)
}

// FlushPending appends a [TextPayload] node for any accumulated pending
// text to Parent, then clears the accumulator. It is a no-op if nothing
// is pending.
func (s *InlineState) FlushPending() {
	if s.pending.Len() == 0 {
		return
	}
	text := s.pending.String()
	s.pending.Reset()
	s.parent.AppendChild(NewText(text))
	s.tokenSeq++
}

// AppendChild flushes any pending text, then appends child to Parent. It
// returns the position newly assigned to child in the state's token
// sequence; a delimiter-producing rule passes this as a [DelimRun]'s
// TokenIndex (spec §4.e).
func (s *InlineState) AppendChild(child *Node) int {
	s.FlushPending()
	s.parent.AppendChild(child)
	s.tokenSeq++
	return s.tokenSeq
}

// Parent returns the node new inline tokens should be appended to.
func (s *InlineState) Parent() *Node { return s.parent }

// PushParent flushes pending text, then sets a new Parent, saving the
// previous one; pair with [InlineState.PopParent]. Link and image rules
// call this while tokenizing their own label text into a nested
// sub-tree.
func (s *InlineState) PushParent(n *Node) {
	s.FlushPending()
	s.parentStack = append(s.parentStack, s.parent)
	s.parent = n
}

// PopParent flushes pending text, then restores the Parent saved by the
// matching PushParent.
func (s *InlineState) PopParent() {
	s.FlushPending()
	n := len(s.parentStack) - 1
	s.parent = s.parentStack[n]
	s.parentStack = s.parentStack[:n]
}

// Delimiters returns the delimiter runs collected so far during the
// primary tokenize pass (spec §4.e). Rules append to this with
// [InlineState.AddDelimiter]; the pairing post rule consumes and mutates
// it in place.
func (s *InlineState) Delimiters() []*DelimRun { return s.delimiters }

// AddDelimiter records a delimiter run produced by an emphasis-like rule.
func (s *InlineState) AddDelimiter(d *DelimRun) {
	s.delimiters = append(s.delimiters, d)
}

// LinkNesting returns the current link-label nesting depth, used by link
// and image rules to reject nested links per CommonMark.
func (s *InlineState) LinkNesting() int { return s.linkNesting }

// PushLinkNesting increments the link nesting depth.
func (s *InlineState) PushLinkNesting() { s.linkNesting++ }

// PopLinkNesting decrements the link nesting depth.
func (s *InlineState) PopLinkNesting() { s.linkNesting-- }

// Nesting returns the current recursion depth (incremented while
// [InlineParser.SkipToken] runs its silent lookahead).
func (s *InlineState) Nesting() int { return s.nesting }

// MaxNesting returns the configured recursion-depth ceiling (spec §5).
func (s *InlineState) MaxNesting() int { return s.maxNesting }

// TrimPendingSpaces removes up to max trailing ' ' bytes from the pending
// accumulator. A hard-line-break rule calls this to retroactively consume
// the run of trailing spaces that the tokenizer's character-at-a-time
// fallback already appended as plain text, before appending its own node.
func (s *InlineState) TrimPendingSpaces(max int) {
	str := s.pending.String()
	i := len(str)
	removed := 0
	for i > 0 && removed < max && str[i-1] == ' ' {
		i--
		removed++
	}
	if removed == 0 {
		return
	}
	s.pending.Reset()
	s.pending.WriteString(str[:i])
}

// cachedSkip returns the memoized result of a prior SkipToken lookahead
// starting at pos, if any.
func (s *InlineState) cachedSkip(pos int) (int, bool) {
	next, ok := s.skipCache[pos]
	return next, ok
}

func (s *InlineState) setCachedSkip(pos, next int) {
	s.skipCache[pos] = next
}
