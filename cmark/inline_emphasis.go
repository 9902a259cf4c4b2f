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

package cmark

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nextmd/mdit"
)

// emphMarker records one "*" or "_" run emphasisRule placed in the tree
// as a literal-text placeholder, together with the [mdit.DelimRun] it
// registered and the parent it was appended to. The engine's own
// delimiter-pairing post rule does the actual matching over the whole
// document's state.Delimiters(); emphasisPostRule just looks each run's
// [mdit.DelimRun.Partner] back up to the emphMarker that holds the node
// to splice.
type emphMarker struct {
	parent *mdit.Node
	node   *mdit.Node
	run    *mdit.DelimRun
	seq    int
}

// emphasisRule recognizes a run of '*' or '_' characters and records it
// as a candidate emphasis delimiter per CommonMark's flanking rules. A
// run that can neither open nor close is emitted as literal text
// immediately; one that can is left as a placeholder text node for
// emphasisPostRule to rewrite once pairing has run.
type emphasisRule struct{}

func (emphasisRule) Run(state *mdit.InlineState, silent bool) bool {
	pos := state.Pos()
	src := state.Src()
	if pos >= state.PosMax() {
		return false
	}
	marker := src[pos]
	if marker != '*' && marker != '_' {
		return false
	}
	length := 0
	for pos+length < state.PosMax() && src[pos+length] == marker {
		length++
	}

	if silent {
		state.SetPos(pos + length)
		return true
	}

	before := runeBefore(src, pos)
	after := runeAt(src, pos+length, state.PosMax())
	left, right, beforePunct, afterPunct := flanking(before, after)

	var canOpen, canClose bool
	if marker == '_' {
		canOpen = left && (!right || beforePunct)
		canClose = right && (!left || afterPunct)
	} else {
		canOpen = left
		canClose = right
	}

	markerText := strings.Repeat(string(rune(marker)), length)
	if !canOpen && !canClose {
		state.PendingAppend(markerText)
		state.SetPos(pos + length)
		return true
	}

	node := mdit.NewText(markerText)
	parent := state.Parent()
	tokenIdx := state.AppendChild(node)
	run := mdit.NewDelimRun(rune(marker), length, tokenIdx, canOpen, canClose)
	state.AddDelimiter(run)
	markers := mdit.GetOrInsert[[]*emphMarker](state.Env(), mdit.ScopeInlineLevel)
	*markers = append(*markers, &emphMarker{parent: parent, node: node, run: run, seq: len(*markers)})
	state.SetPos(pos + length)
	return true
}

// runeBefore and runeAt return the rune adjacent to pos within src,
// treating the boundary of src as Unicode whitespace per CommonMark's
// flanking definitions.
func runeBefore(src []byte, pos int) rune {
	if pos <= 0 {
		return ' '
	}
	r, _ := utf8.DecodeLastRune(src[:pos])
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

func runeAt(src []byte, pos, limit int) rune {
	if pos >= limit {
		return ' '
	}
	r, _ := utf8.DecodeRune(src[pos:limit])
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

func classify(r rune) (isSpace, isPunct bool) {
	return unicode.IsSpace(r), unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// flanking implements CommonMark's left-/right-flanking delimiter run
// tests (spec 6.2), returning whether before/after are themselves
// punctuation so callers can apply the marker-specific intraword rule.
func flanking(before, after rune) (left, right, beforePunct, afterPunct bool) {
	afterSpace, afterP := classify(after)
	beforeSpace, beforeP := classify(before)

	left = !afterSpace && (!afterP || beforeSpace || beforeP)
	right = !beforeSpace && (!beforeP || afterSpace || afterP)
	return left, right, beforeP, afterP
}

// emphasisPostRule resolves paired delimiter runs into [EmphasisPayload]
// and [StrongPayload] nodes wrapping the content between each matched
// pair, peeling two marker characters per [StrongPayload] layer and a
// final single character into an outermost [EmphasisPayload] layer when
// a pair's usable length is odd (mirroring the grammar's "rule of 3" and
// the convention of nesting the leftover single-character emphasis
// outside any strong layers it shares a pair with).
type emphasisPostRule struct{}

type emphPair struct {
	parent     *mdit.Node
	openerNode *mdit.Node
	closerNode *mdit.Node
	openerRun  *mdit.DelimRun
	closerRun  *mdit.DelimRun
	seq        int
}

func (emphasisPostRule) Run(state *mdit.InlineState) {
	markers := mdit.GetOrInsert[[]*emphMarker](state.Env(), mdit.ScopeInlineLevel)
	if len(*markers) == 0 {
		return
	}

	// The engine's delimiter-pairing post rule (registered BeforeAll, so
	// it has already run) did the actual matching over the full run of
	// "*"/"_" delimiters and linked each pair through Partner. Map run
	// pointers back to the markers holding the nodes to splice.
	byRun := make(map[*mdit.DelimRun]*emphMarker, len(*markers))
	for _, m := range *markers {
		byRun[m.run] = m
	}

	var pairs []*emphPair
	for _, m := range *markers {
		if m.run.End < 0 || m.run.Partner == nil {
			continue
		}
		closer := byRun[m.run.Partner]
		pairs = append(pairs, &emphPair{
			parent:     m.parent,
			openerNode: m.node,
			closerNode: closer.node,
			openerRun:  m.run,
			closerRun:  closer.run,
			seq:        closer.seq,
		})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].seq < pairs[j].seq })
	for _, p := range pairs {
		resolveEmphasisPair(p)
	}
}

func resolveEmphasisPair(p *emphPair) {
	openLen := p.openerRun.Length
	closeLen := p.closerRun.Length
	use := openLen
	if closeLen < use {
		use = closeLen
	}
	strongLayers := use / 2
	hasEm := use%2 == 1
	leftoverOpen := openLen - use
	leftoverClose := closeLen - use

	children := p.parent.Children()
	idxOpen := indexOfNode(children, p.openerNode)
	idxClose := indexOfNode(children, p.closerNode)
	if idxOpen < 0 || idxClose < 0 || idxClose <= idxOpen {
		return
	}

	wrapped := append([]*mdit.Node(nil), children[idxOpen+1:idxClose]...)
	for i := 0; i < strongLayers; i++ {
		n := mdit.NewNode(&StrongPayload{})
		n.SetChildren(wrapped)
		wrapped = []*mdit.Node{n}
	}
	if hasEm {
		n := mdit.NewNode(&EmphasisPayload{})
		n.SetChildren(wrapped)
		wrapped = []*mdit.Node{n}
	}

	newChildren := make([]*mdit.Node, 0, len(children))
	newChildren = append(newChildren, children[:idxOpen]...)
	if leftoverOpen > 0 {
		newChildren = append(newChildren, mdit.NewText(strings.Repeat(string(p.openerRun.Marker), leftoverOpen)))
	}
	newChildren = append(newChildren, wrapped...)
	if leftoverClose > 0 {
		newChildren = append(newChildren, mdit.NewText(strings.Repeat(string(p.closerRun.Marker), leftoverClose)))
	}
	newChildren = append(newChildren, children[idxClose+1:]...)
	p.parent.SetChildren(newChildren)
}

func indexOfNode(children []*mdit.Node, target *mdit.Node) int {
	for i, c := range children {
		if c == target {
			return i
		}
	}
	return -1
}
