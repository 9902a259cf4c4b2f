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
	"html"

	"github.com/nextmd/mdit"
)

// escapeRule recognizes a backslash followed by an ASCII punctuation
// character as that character escaped, and a backslash followed by a
// newline as a hard line break. Any other backslash is literal.
type escapeRule struct{}

func (escapeRule) Run(state *mdit.InlineState, silent bool) bool {
	pos := state.Pos()
	src := state.Src()
	if pos >= state.PosMax() || src[pos] != '\\' {
		return false
	}
	if pos+1 >= state.PosMax() {
		return false
	}
	next := src[pos+1]

	if next == '\n' {
		if silent {
			state.SetPos(pos + 2)
			return true
		}
		state.AppendChild(mdit.NewNode(&HardBreakPayload{}))
		state.SetPos(skipLeadingSpaces(src, pos+2, state.PosMax()))
		return true
	}

	if isASCIIPunct(next) {
		if silent {
			state.SetPos(pos + 2)
			return true
		}
		state.AppendChild(mdit.NewNode(&mdit.TextSpecialPayload{
			Content: string(next),
			Markup:  string(src[pos : pos+2]),
		}))
		state.SetPos(pos + 2)
		return true
	}

	return false
}

func skipLeadingSpaces(src []byte, pos, max int) int {
	for pos < max && src[pos] == ' ' {
		pos++
	}
	return pos
}

// entityRule recognizes an HTML5 named, decimal, or hexadecimal
// character reference and expands it via the standard library's entity
// table, which is the only entity table available in the dependency
// corpus; no pack library ships a CommonMark-conformant HTML5 entity
// list.
type entityRule struct{}

func (entityRule) Run(state *mdit.InlineState, silent bool) bool {
	pos := state.Pos()
	src := state.Src()
	if pos >= state.PosMax() || src[pos] != '&' {
		return false
	}
	end := scanEntity(src, pos, state.PosMax())
	if end < 0 {
		return false
	}
	if silent {
		state.SetPos(end)
		return true
	}
	raw := string(src[pos:end])
	decoded := html.UnescapeString(raw)
	state.AppendChild(mdit.NewNode(&mdit.TextSpecialPayload{
		Content: decoded,
		Markup:  raw,
	}))
	state.SetPos(end)
	return true
}

// scanEntity returns the exclusive end offset of a well-formed entity
// reference starting at src[pos] == '&', or -1 if none is present.
func scanEntity(src []byte, pos, max int) int {
	i := pos + 1
	if i >= max {
		return -1
	}
	if src[i] == '#' {
		i++
		if i < max && (src[i] == 'x' || src[i] == 'X') {
			i++
			start := i
			for i < max && isHexDigit(src[i]) {
				i++
			}
			if i == start || i-start > 6 {
				return -1
			}
		} else {
			start := i
			for i < max && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			if i == start || i-start > 7 {
				return -1
			}
		}
		if i < max && src[i] == ';' {
			return i + 1
		}
		return -1
	}

	start := i
	for i < max && i-start < 32 && isAlnumByte(src[i]) {
		i++
	}
	if i == start || i >= max || src[i] != ';' {
		return -1
	}
	name := string(src[start:i])
	if html.UnescapeString("&"+name+";") == "&"+name+";" {
		return -1
	}
	return i + 1
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

// breakRule recognizes a literal newline in the source as a soft break,
// or (when preceded by at least two trailing spaces) as a hard break,
// retroactively trimming those spaces from whatever plain text the
// tokenizer's fallback already accumulated for them.
type breakRule struct{}

func (breakRule) Run(state *mdit.InlineState, silent bool) bool {
	pos := state.Pos()
	src := state.Src()
	if pos >= state.PosMax() || src[pos] != '\n' {
		return false
	}

	trailingSpaces := 0
	for pos-1-trailingSpaces >= 0 && src[pos-1-trailingSpaces] == ' ' {
		trailingSpaces++
	}

	if silent {
		state.SetPos(pos + 1)
		return true
	}

	next := skipLeadingSpaces(src, pos+1, state.PosMax())
	if trailingSpaces >= 2 {
		state.TrimPendingSpaces(trailingSpaces)
		state.AppendChild(mdit.NewNode(&HardBreakPayload{}))
	} else {
		state.AppendChild(mdit.NewNode(&SoftBreakPayload{}))
	}
	state.SetPos(next)
	return true
}
