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

func isSpaceOrTab(b byte) bool {
	return b == ' ' || b == '\t'
}

func trimTrailingSpace(b []byte) []byte {
	i := len(b)
	for i > 0 && isSpaceOrTab(b[i-1]) {
		i--
	}
	return b[:i]
}

func trimLeadingSpace(b []byte) []byte {
	i := 0
	for i < len(b) && isSpaceOrTab(b[i]) {
		i++
	}
	return b[i:]
}

func isBlankBytes(b []byte) bool {
	return len(trimLeadingSpace(b)) == 0
}

// appendInlineContainer appends an [mdit.InlineContainerPayload] node
// wrapping source to parent, so that the core chain's inline pass later
// expands it in place.
func appendInlineContainer(state *mdit.BlockState, parent *mdit.Node, source string, line int) {
	container := mdit.NewNode(&mdit.InlineContainerPayload{
		Source:      source,
		LineOffsets: []mdit.LineOffset{{Offset: 0, Line: line}},
	})
	parent.AppendChild(container)
}

// setSrcMapLines records a source map spanning lines [start, end) on n,
// using state's line table to find the corresponding byte range.
func setSrcMapLines(state *mdit.BlockState, n *mdit.Node, start, end int) {
	startOff := state.LineBounds(start).Start
	endOff := startOff
	if end > start {
		endOff = state.LineBounds(end - 1).End
	}
	n.SetSrcMap(mdit.SrcMap{
		StartLine: start,
		EndLine:   end,
		Span:      mdit.Span{Start: startOff, End: endOff},
	})
}
