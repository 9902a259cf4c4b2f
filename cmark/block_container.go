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

import "github.com/nextmd/mdit"

// blockquoteRule recognizes one or more consecutive lines beginning with
// "> " (or just ">"). Every line it consumes has its marker permanently
// stripped via [mdit.BlockState.SetLineStart] before the inner tokenizer
// runs, so the container's content indent is always 0 relative to each
// line's own (rewritten) start.
type blockquoteRule struct{}

func (blockquoteRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.CurrentLine()
	if state.SCount(line)-state.BlkIndent() >= 4 {
		return false
	}
	content := state.LineContent(line)
	if len(content) == 0 || content[0] != '>' {
		return false
	}
	if silent {
		return true
	}

	n := mdit.NewNode(&BlockquotePayload{})
	startLine := line

	state.PushParent(n)
	consumeBlockquoteMarker(state, line)
	state.PushBlkIndent(0)

	limit := state.LineMax()
	for l := line + 1; l < limit; l++ {
		if state.IsBlank(l) {
			limit = l
			break
		}
		c := state.LineContent(l)
		if len(c) == 0 || c[0] != '>' {
			limit = l
			break
		}
		consumeBlockquoteMarker(state, l)
	}
	pushedLineMax := limit != state.LineMax()
	if pushedLineMax {
		state.PushLineMax(limit)
	}

	state.Parser().TokenizeBlock(state)

	if pushedLineMax {
		state.PopLineMax()
	}
	state.PopBlkIndent()
	state.PopParent()

	setSrcMapLines(state, n, startLine, state.CurrentLine())
	state.Parent().AppendChild(n)
	return true
}

// consumeBlockquoteMarker strips a line's leading ">" plus at most one
// following space, in place.
func consumeBlockquoteMarker(state *mdit.BlockState, line int) {
	content := state.LineContent(line)
	lineStart := state.LineBounds(line).Start + (len(state.LineRaw(line)) - len(content))
	off := 1
	if off < len(content) && isSpaceOrTab(content[off]) {
		off++
	}
	state.SetLineStart(line, lineStart+off)
}

// listRule recognizes a bullet or ordered list marker and consumes every
// item belonging to the same list (same bullet character, or the same
// ordered delimiter) until a non-matching line, excess indentation, or
// the end of the container's line bound.
type listRule struct{}

func (listRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.CurrentLine()
	if state.SCount(line)-state.BlkIndent() >= 4 {
		return false
	}
	marker, ordered, start, ok := parseListMarker(state.LineContent(line))
	if !ok {
		return false
	}
	if silent {
		return true
	}

	listPayload := &ListPayload{Ordered: ordered, Start: start, Marker: marker, Tight: true}
	listNode := mdit.NewNode(listPayload)
	startLine := line
	anyBlankBetween := false
	anyLoose := false

	for {
		consumeListMarkerLine(state, state.CurrentLine(), marker, ordered)
		itemNode := mdit.NewNode(&ListItemPayload{})
		itemStartLine := state.CurrentLine()

		state.PushParent(itemNode)
		state.PushBlkIndent(0)
		state.Parser().TokenizeBlock(state)
		state.PopBlkIndent()
		state.PopParent()

		setSrcMapLines(state, itemNode, itemStartLine, state.CurrentLine())
		listNode.AppendChild(itemNode)
		if itemLooksLoose(itemNode) {
			anyLoose = true
		}

		next := state.CurrentLine()
		blankRun := 0
		for next < state.LineMax() && state.IsBlank(next) {
			next++
			blankRun++
		}
		if blankRun > 0 {
			anyBlankBetween = true
		}
		state.SetLine(next)
		if next >= state.LineMax() || state.SCount(next)-state.BlkIndent() >= 4 {
			break
		}
		nextMarker, nextOrdered, _, nextOK := parseListMarker(state.LineContent(next))
		if !nextOK || nextOrdered != ordered || nextMarker != marker {
			break
		}
	}

	listPayload.Tight = !(anyBlankBetween || anyLoose)
	setSrcMapLines(state, listNode, startLine, state.CurrentLine())
	state.Parent().AppendChild(listNode)
	return true
}

// itemLooksLoose reports whether a list item contains more than one
// block-level child, which CommonMark treats as evidence the enclosing
// list is loose.
func itemLooksLoose(item *mdit.Node) bool {
	return item.ChildCount() > 1
}

// parseListMarker reports whether content begins with a valid list
// marker, and if so its shape: marker is the bullet character or the
// ordered delimiter ('.' or ')'); ordered and start describe an ordered
// list's first number.
func parseListMarker(content []byte) (marker byte, ordered bool, start int, ok bool) {
	if len(content) == 0 {
		return 0, false, 0, false
	}
	switch content[0] {
	case '-', '*', '+':
		if len(content) > 1 && !isSpaceOrTab(content[1]) {
			return 0, false, 0, false
		}
		return content[0], false, 0, true
	}
	i := 0
	for i < len(content) && i < 9 && content[i] >= '0' && content[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(content) {
		return 0, false, 0, false
	}
	if content[i] != '.' && content[i] != ')' {
		return 0, false, 0, false
	}
	if i+1 < len(content) && !isSpaceOrTab(content[i+1]) {
		return 0, false, 0, false
	}
	n := 0
	for _, d := range content[:i] {
		n = n*10 + int(d-'0')
	}
	return content[i], true, n, true
}

// consumeListMarkerLine strips line's marker and following indentation
// in place, the same way [consumeBlockquoteMarker] does for "> ".
func consumeListMarkerLine(state *mdit.BlockState, line int, marker byte, ordered bool) {
	content := state.LineContent(line)
	markerLen := 1
	if ordered {
		markerLen = 0
		for markerLen < len(content) && content[markerLen] >= '0' && content[markerLen] <= '9' {
			markerLen++
		}
		markerLen++ // the '.' or ')'
	}
	rest := content[markerLen:]
	spaces := 0
	for spaces < len(rest) && spaces < 5 && isSpaceOrTab(rest[spaces]) {
		spaces++
	}
	consumed := markerLen
	switch {
	case spaces == len(rest):
		consumed++
	case spaces >= 1 && spaces <= 4:
		consumed += spaces
	default:
		consumed++
	}
	base := state.LineBounds(line).Start + (len(state.LineRaw(line)) - len(content))
	state.SetLineStart(line, base+consumed)
}
