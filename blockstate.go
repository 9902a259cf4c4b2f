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

// tabStopSize is the multiple of columns that a tab advances to, per
// https://spec.commonmark.org/0.30/#tabs.
const tabStopSize = 4

// lineInfo is one row of a BlockState's precomputed line table (spec §3):
// byte-start b, byte-end e, leading-whitespace column count sCount, and
// post-whitespace byte offset tShift (relative to b).
type lineInfo struct {
	b      int
	e      int
	sCount int
	tShift int
}

// BlockState is the mutable object block rules read and mutate while the
// [BlockParser] walks the source line by line. Exported methods on
// BlockState are the contract between the block parser and block rules
// (spec §4.c): container rules (blockquote, list items) read and
// temporarily narrow BlkIndent and LineMax via the Push.../Pop... methods,
// then recurse into [Parser.TokenizeBlock].
type BlockState struct {
	parser *Parser
	src    []byte
	lines  []lineInfo

	line    int
	lineMax int
	lineMaxStack []int

	blkIndent      int
	blkIndentStack []int

	nesting    int
	maxNesting int

	tight           bool
	precededByBlank bool

	parent      *Node
	parentStack []*Node

	env *Env
}

func newBlockState(parser *Parser, src []byte, root *Node, env *Env) *BlockState {
	s := &BlockState{
		parser:     parser,
		src:        src,
		maxNesting: parser.options.MaxNesting,
		parent:     root,
		env:        env,
	}
	s.buildLineTable()
	s.lineMax = len(s.lines)
	return s
}

func (s *BlockState) buildLineTable() {
	start := 0
	for start <= len(s.src) {
		end := start
		for end < len(s.src) && s.src[end] != '\n' {
			end++
		}
		info := lineInfo{b: start, e: end}
		col := 0
		i := start
		for i < end {
			switch s.src[i] {
			case ' ':
				col++
				i++
			case '\t':
				col = (col/tabStopSize + 1) * tabStopSize
				i++
			default:
				info.sCount = col
				info.tShift = i - start
				s.lines = append(s.lines, info)
				goto nextLine
			}
		}
		info.sCount = col
		info.tShift = end - start
		s.lines = append(s.lines, info)
	nextLine:
		if end >= len(s.src) {
			break
		}
		start = end + 1
	}
}

// Src returns the normalized document source.
func (s *BlockState) Src() []byte { return s.src }

// Parser returns the owning [Parser], so that a block rule implementing a
// container construct can recurse into [Parser.TokenizeBlock].
func (s *BlockState) Parser() *Parser { return s.parser }

// Env returns the shared scoped-state environment for this parse.
func (s *BlockState) Env() *Env { return s.env }

// LineCount returns the number of lines in the document's line table.
func (s *BlockState) LineCount() int { return len(s.lines) }

// CurrentLine returns the 0-based index of the line the parser is
// currently positioned at.
func (s *BlockState) CurrentLine() int { return s.line }

// SetLine moves the line cursor. Rules call this after consuming one or
// more lines themselves (e.g. a fenced code block consuming its content
// without invoking sub-rules).
func (s *BlockState) SetLine(line int) { s.line = line }

// AdvanceLine moves the line cursor forward by one line.
func (s *BlockState) AdvanceLine() { s.line++ }

// LineMax returns the exclusive upper bound on lines the current
// tokenizer invocation may consume.
func (s *BlockState) LineMax() int { return s.lineMax }

// PushLineMax narrows LineMax for the duration of a recursive
// [Parser.TokenizeBlock] call (used by container rules); pair with
// [BlockState.PopLineMax].
func (s *BlockState) PushLineMax(max int) {
	s.lineMaxStack = append(s.lineMaxStack, s.lineMax)
	s.lineMax = max
}

// PopLineMax restores the LineMax saved by the matching PushLineMax.
func (s *BlockState) PopLineMax() {
	n := len(s.lineMaxStack) - 1
	s.lineMax = s.lineMaxStack[n]
	s.lineMaxStack = s.lineMaxStack[:n]
}

// BlkIndent returns the column indent a line must meet or exceed to
// continue the current container.
func (s *BlockState) BlkIndent() int { return s.blkIndent }

// PushBlkIndent sets a new BlkIndent, saving the previous value; pair with
// [BlockState.PopBlkIndent].
func (s *BlockState) PushBlkIndent(indent int) {
	s.blkIndentStack = append(s.blkIndentStack, s.blkIndent)
	s.blkIndent = indent
}

// PopBlkIndent restores the BlkIndent saved by the matching PushBlkIndent.
func (s *BlockState) PopBlkIndent() {
	n := len(s.blkIndentStack) - 1
	s.blkIndent = s.blkIndentStack[n]
	s.blkIndentStack = s.blkIndentStack[:n]
}

// Nesting returns the current container nesting depth.
func (s *BlockState) Nesting() int { return s.nesting }

// PushNesting increments the nesting depth; pair with
// [BlockState.PopNesting].
func (s *BlockState) PushNesting() { s.nesting++ }

// PopNesting decrements the nesting depth.
func (s *BlockState) PopNesting() { s.nesting-- }

// MaxNesting returns the configured recursion-depth ceiling (spec §5).
func (s *BlockState) MaxNesting() int { return s.maxNesting }

// Tight reports whether the most recently closed construct is considered
// "tight" (not preceded by a blank line).
func (s *BlockState) Tight() bool { return s.tight }

// PrecededByBlank reports whether a blank line immediately preceded the
// line currently being matched.
func (s *BlockState) PrecededByBlank() bool { return s.precededByBlank }

// Parent returns the node new block-level children should be appended to.
func (s *BlockState) Parent() *Node { return s.parent }

// PushParent sets a new Parent, saving the previous one; pair with
// [BlockState.PopParent]. Container rules (blockquote, list item) call
// this before recursing into [Parser.TokenizeBlock].
func (s *BlockState) PushParent(n *Node) {
	s.parentStack = append(s.parentStack, s.parent)
	s.parent = n
}

// PopParent restores the Parent saved by the matching PushParent.
func (s *BlockState) PopParent() {
	n := len(s.parentStack) - 1
	s.parent = s.parentStack[n]
	s.parentStack = s.parentStack[:n]
}

// SCount returns line's leading-whitespace column count.
func (s *BlockState) SCount(line int) int {
	if line >= len(s.lines) {
		return 0
	}
	return s.lines[line].sCount
}

// TShift returns the byte offset, relative to the line's start, of the
// first non-whitespace byte.
func (s *BlockState) TShift(line int) int {
	if line >= len(s.lines) {
		return 0
	}
	return s.lines[line].tShift
}

// LineBounds returns the byte range [start, end) of line's raw content,
// excluding the line terminator.
func (s *BlockState) LineBounds(line int) Span {
	if line >= len(s.lines) {
		return Span{Start: len(s.src), End: len(s.src)}
	}
	li := s.lines[line]
	return Span{Start: li.b, End: li.e}
}

// LineRaw returns line's raw bytes, excluding the line terminator.
func (s *BlockState) LineRaw(line int) []byte {
	return s.LineBounds(line).Slice(s.src)
}

// LineContent returns line's bytes after its leading indentation.
func (s *BlockState) LineContent(line int) []byte {
	if line >= len(s.lines) {
		return nil
	}
	li := s.lines[line]
	return s.src[li.b+li.tShift : li.e]
}

// IsBlank reports whether line contains only whitespace.
func (s *BlockState) IsBlank(line int) bool {
	if line >= len(s.lines) {
		return true
	}
	li := s.lines[line]
	return li.b+li.tShift >= li.e
}

// SetLineStart advances line's byte-start to newB (a container rule uses
// this to permanently consume a marker it has recognized -- a
// blockquote's ">" or a list item's bullet and indent -- before
// recursing into [Parser.TokenizeBlock]), recomputing the line's
// leading-whitespace column count and post-whitespace offset relative to
// the new start.
func (s *BlockState) SetLineStart(line, newB int) {
	li := &s.lines[line]
	li.b = newB
	col := 0
	i := newB
	for i < li.e {
		switch s.src[i] {
		case ' ':
			col++
			i++
		case '\t':
			col = (col/tabStopSize + 1) * tabStopSize
			i++
		default:
			li.sCount = col
			li.tShift = i - newB
			return
		}
	}
	li.sCount = col
	li.tShift = i - newB
}

// skipBlankLines advances past consecutive blank lines starting at line,
// leaving the cursor on the first non-blank line (which may be LineMax).
func (s *BlockState) skipBlankLines() {
	for s.line < s.lineMax && s.IsBlank(s.line) {
		s.precededByBlank = true
		s.line++
	}
}
