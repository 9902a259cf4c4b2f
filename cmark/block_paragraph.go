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

// referenceDefRule recognizes a link reference definition, "[label]:
// dest \"title\"", optionally spread across up to three lines. It never
// appends a node; a matched definition is recorded in the document's
// reference map via [defineRef] and simply consumed, so that paragraphRule
// never sees it. It is not AfterAll, so it is tried (and wins) before the
// paragraph fallback on any line beginning with '['.
type referenceDefRule struct{}

func (referenceDefRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.CurrentLine()
	label, dest, title, consumed, ok := parseRefDefAt(state, line)
	if !ok {
		return false
	}
	if silent {
		return true
	}
	defineRef(state.Env(), label, refDef{Destination: dest, Title: title})
	state.SetLine(line + consumed)
	return true
}

// parseRefDefAt reads (without mutating state or the environment) the
// link reference definition starting at line, if any.
func parseRefDefAt(state *mdit.BlockState, line int) (label, dest, title string, consumed int, ok bool) {
	if line >= state.LineMax() || state.SCount(line)-state.BlkIndent() >= 4 {
		return "", "", "", 0, false
	}
	content := state.LineContent(line)
	if len(content) == 0 || content[0] != '[' {
		return "", "", "", 0, false
	}

	label, rest, ok := parseLinkLabel(string(content))
	if !ok || strings.TrimSpace(label) == "" {
		return "", "", "", 0, false
	}
	if len(rest) == 0 || rest[0] != ':' {
		return "", "", "", 0, false
	}
	rest = strings.TrimLeft(rest[1:], " \t")

	consumed = 1
	if rest == "" {
		next := line + 1
		if next >= state.LineMax() || state.IsBlank(next) {
			return "", "", "", 0, false
		}
		rest = strings.TrimLeft(string(state.LineContent(next)), " \t")
		consumed = 2
	}

	dest, rest, ok = parseLinkDestination(rest)
	if !ok || dest == "" {
		return "", "", "", 0, false
	}
	rest = strings.TrimRight(strings.TrimLeft(rest, " \t"), " \t")

	if rest != "" {
		t, ok := parseLinkTitle(rest)
		if !ok {
			return "", "", "", 0, false
		}
		title = t
	} else {
		titleLine := line + consumed
		if titleLine < state.LineMax() && !state.IsBlank(titleLine) {
			cand := strings.TrimSpace(string(state.LineContent(titleLine)))
			if t, ok := parseLinkTitle(cand); ok {
				title = t
				consumed++
			}
		}
	}

	return label, unescapeText(dest), title, consumed, true
}

// paragraphRule is the grammar's fallback: it greedily collects
// consecutive non-blank lines into a paragraph, stopping at a blank line,
// a setext heading underline, or any line that another registered block
// rule would claim (spec's paragraph-interrupt rule, tested via
// [mdit.Parser.TryBlockRules]). It is registered AfterAll so every other
// block rule gets first refusal on a line. Its own silent check always
// reports false: a paragraph never "interrupts" anything, including
// itself, so this never short-circuits another paragraph's interrupt
// test.
type paragraphRule struct{}

func (paragraphRule) Run(state *mdit.BlockState, silent bool) bool {
	if silent {
		return false
	}
	startLine := state.CurrentLine()
	if state.IsBlank(startLine) {
		return false
	}

	lines := []string{string(trimLeadingSpace(state.LineContent(startLine)))}
	endLine := startLine + 1
	setextLevel := 0
	setextLine := -1

scan:
	for endLine < state.LineMax() {
		if state.IsBlank(endLine) {
			break
		}
		content := state.LineContent(endLine)
		if state.SCount(endLine)-state.BlkIndent() < 4 {
			if level := setextUnderlineLevel(content); level > 0 {
				setextLevel = level
				setextLine = endLine
				break scan
			}
			saved := state.CurrentLine()
			state.SetLine(endLine)
			interrupts := state.Parser().TryBlockRules(state)
			state.SetLine(saved)
			if interrupts {
				break scan
			}
		}
		lines = append(lines, string(trimLeadingSpace(content)))
		endLine++
	}

	joined := strings.Join(lines, "\n")

	if setextLevel > 0 {
		n := mdit.NewNode(&HeadingPayload{Level: setextLevel, Setext: true})
		setSrcMapLines(state, n, startLine, setextLine+1)
		appendInlineContainer(state, n, joined, startLine)
		state.Parent().AppendChild(n)
		state.SetLine(setextLine + 1)
		return true
	}

	n := mdit.NewNode(&ParagraphPayload{})
	setSrcMapLines(state, n, startLine, endLine)
	appendInlineContainer(state, n, joined, startLine)
	state.Parent().AppendChild(n)
	state.SetLine(endLine)
	return true
}

// setextUnderlineLevel reports the heading level implied by content as a
// setext underline: 1 for a run of '=', 2 for a run of '-', 0 if content
// is not such a run.
func setextUnderlineLevel(content []byte) int {
	content = trimTrailingSpace(content)
	if len(content) == 0 {
		return 0
	}
	want := content[0]
	if want != '=' && want != '-' {
		return 0
	}
	for _, b := range content {
		if b != want {
			return 0
		}
	}
	if want == '=' {
		return 1
	}
	return 2
}
