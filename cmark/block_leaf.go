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
	"strings"

	"github.com/nextmd/mdit"
)

// thematicBreakRule recognizes a line of three or more matching '-', '_',
// or '*' characters, optionally interspersed with spaces.
type thematicBreakRule struct{}

func (thematicBreakRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.CurrentLine()
	if state.SCount(line)-state.BlkIndent() >= 4 {
		return false
	}
	if !isThematicBreak(state.LineContent(line)) {
		return false
	}
	if silent {
		return true
	}
	n := mdit.NewNode(&ThematicBreakPayload{})
	setSrcMapLines(state, n, line, line+1)
	state.Parent().AppendChild(n)
	state.SetLine(line + 1)
	return true
}

func isThematicBreak(line []byte) bool {
	line = trimTrailingSpace(line)
	n := 0
	var want byte
	for _, b := range line {
		switch b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return false
			}
			n++
		case ' ', '\t':
		default:
			return false
		}
	}
	return n >= 3
}

// atxHeadingRule recognizes a line of 1-6 '#' characters followed by
// whitespace or end of line.
type atxHeadingRule struct{}

func (atxHeadingRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.CurrentLine()
	if state.SCount(line)-state.BlkIndent() >= 4 {
		return false
	}
	content := state.LineContent(line)
	level := 0
	for level < len(content) && level < 7 && content[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	if level < len(content) && !isSpaceOrTab(content[level]) {
		return false
	}
	if silent {
		return true
	}

	rest := trimTrailingSpace(content[level:])
	rest = trimLeadingSpace(rest)
	// Strip a closing sequence of hashes, e.g. "## Heading ##".
	trimmed := trimTrailingSpace(rest)
	i := len(trimmed)
	for i > 0 && trimmed[i-1] == '#' {
		i--
	}
	if i < len(trimmed) && (i == 0 || isSpaceOrTab(trimmed[i-1])) {
		rest = trimTrailingSpace(trimmed[:i])
	}

	n := mdit.NewNode(&HeadingPayload{Level: level})
	setSrcMapLines(state, n, line, line+1)
	appendInlineContainer(state, n, string(rest), line)
	state.Parent().AppendChild(n)
	state.SetLine(line + 1)
	return true
}

// fencedCodeBlockRule recognizes a fence of 3+ backticks or tildes,
// consuming lines itself up to a matching closing fence (or the end of
// the container's line bound, if unterminated).
type fencedCodeBlockRule struct{}

func (fencedCodeBlockRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.CurrentLine()
	if state.SCount(line)-state.BlkIndent() >= 4 {
		return false
	}
	content := state.LineContent(line)
	fenceChar, fenceLen := scanFence(content)
	if fenceLen < 3 {
		return false
	}
	info := string(trimTrailingSpace(trimLeadingSpace(content[fenceLen:])))
	if fenceChar == '`' && strings.ContainsRune(info, '`') {
		return false
	}
	if silent {
		return true
	}

	startLine := line
	endLine := state.LineMax()
	closeLine := -1
	for l := line + 1; l < state.LineMax(); l++ {
		c := state.LineContent(l)
		if state.SCount(l)-state.BlkIndent() < 4 {
			ch, n := scanFence(c)
			if ch == fenceChar && n >= fenceLen && isBlankBytes(c[n:]) {
				closeLine = l
				break
			}
		}
	}
	if closeLine >= 0 {
		endLine = closeLine + 1
	}

	var b strings.Builder
	for l := line + 1; l < endLine && (closeLine < 0 || l < closeLine); l++ {
		b.Write(state.LineContent(l))
		b.WriteByte('\n')
	}

	n := mdit.NewNode(&CodeBlockPayload{Content: b.String(), Fenced: true, Info: info})
	setSrcMapLines(state, n, startLine, endLine)
	state.Parent().AppendChild(n)
	state.SetLine(endLine)
	return true
}

func scanFence(line []byte) (ch byte, n int) {
	if len(line) == 0 {
		return 0, 0
	}
	ch = line[0]
	if ch != '`' && ch != '~' {
		return 0, 0
	}
	for n < len(line) && line[n] == ch {
		n++
	}
	return ch, n
}

// indentedCodeBlockRule recognizes a run of lines indented at least 4
// columns beyond the container's indent.
type indentedCodeBlockRule struct{}

func (indentedCodeBlockRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.CurrentLine()
	if state.SCount(line)-state.BlkIndent() < 4 {
		return false
	}
	if silent {
		return true
	}

	startLine := line
	endLine := line
	var b strings.Builder
	for l := line; l < state.LineMax(); l++ {
		if state.IsBlank(l) {
			// Blanks are tentatively included; trimmed back if the block
			// ends here.
			lookahead := l + 1
			for lookahead < state.LineMax() && state.IsBlank(lookahead) {
				lookahead++
			}
			if lookahead >= state.LineMax() || state.SCount(lookahead)-state.BlkIndent() < 4 {
				break
			}
			for ; l < lookahead; l++ {
				b.WriteByte('\n')
			}
			l--
			continue
		}
		if state.SCount(l)-state.BlkIndent() < 4 {
			break
		}
		content := codeIndentContent(state, l)
		b.Write(content)
		b.WriteByte('\n')
		endLine = l
	}

	n := mdit.NewNode(&CodeBlockPayload{Content: b.String(), Fenced: false})
	setSrcMapLines(state, n, startLine, endLine+1)
	state.Parent().AppendChild(n)
	state.SetLine(endLine + 1)
	return true
}

// codeIndentContent returns line's content after stripping 4 columns of
// leading indentation beyond the container's indent.
func codeIndentContent(state *mdit.BlockState, line int) []byte {
	content := state.LineContent(line)
	taken, skip := 0, 0
	for skip < len(content) && taken < 4 {
		switch content[skip] {
		case ' ':
			taken++
		case '\t':
			taken += 4 - (taken % 4)
		default:
			return content[skip:]
		}
		skip++
	}
	return content[skip:]
}

// htmlBlockRule recognizes a simplified subset of CommonMark's raw HTML
// block start conditions: a line beginning (after indentation less than
// 4 columns) with '<' followed by a tag name, comment, or processing
// instruction marker. It consumes through the next blank line.
type htmlBlockRule struct{}

func (htmlBlockRule) Run(state *mdit.BlockState, silent bool) bool {
	if !state.Parser().Options().HTML {
		return false
	}
	line := state.CurrentLine()
	if state.SCount(line)-state.BlkIndent() >= 4 {
		return false
	}
	content := state.LineContent(line)
	if !looksLikeHTMLBlockStart(content) {
		return false
	}
	if silent {
		return true
	}

	startLine := line
	endLine := line + 1
	var b strings.Builder
	b.Write(content)
	b.WriteByte('\n')
	for l := line + 1; l < state.LineMax() && !state.IsBlank(l); l++ {
		b.Write(state.LineContent(l))
		b.WriteByte('\n')
		endLine = l + 1
	}

	n := mdit.NewNode(&HTMLBlockPayload{Content: b.String()})
	setSrcMapLines(state, n, startLine, endLine)
	state.Parent().AppendChild(n)
	state.SetLine(endLine)
	return true
}

func looksLikeHTMLBlockStart(content []byte) bool {
	if len(content) == 0 || content[0] != '<' {
		return false
	}
	rest := content[1:]
	if len(rest) == 0 {
		return false
	}
	if rest[0] == '!' || rest[0] == '?' {
		return true
	}
	i := 0
	if rest[0] == '/' {
		i = 1
	}
	if i >= len(rest) || !isASCIILetter(rest[i]) {
		return false
	}
	return true
}

func isASCIILetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
