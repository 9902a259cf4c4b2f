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

// htmlInlineRule recognizes an open tag, closing tag, HTML comment,
// processing instruction, declaration, or CDATA section starting at '<',
// per CommonMark's inline HTML grammar (spec 6.10). It defers to
// [mdit.Options.HTML] like [htmlBlockRule] does at block level: when
// disabled, the construct is left for the tokenizer's plain-text
// fallback to consume one character at a time.
type htmlInlineRule struct{}

func (htmlInlineRule) Run(state *mdit.InlineState, silent bool) bool {
	if !state.Parser().Options().HTML {
		return false
	}
	pos := state.Pos()
	src := state.Src()
	end := scanHTMLInline(src, pos, state.PosMax())
	if end < 0 {
		return false
	}
	if silent {
		state.SetPos(end)
		return true
	}
	state.AppendChild(mdit.NewNode(&HTMLInlinePayload{Content: string(src[pos:end])}))
	state.SetPos(end)
	return true
}

// scanHTMLInline returns the exclusive end offset of a well-formed inline
// HTML construct starting at src[pos] == '<', or -1 if none matches.
func scanHTMLInline(src []byte, pos, max int) int {
	if pos >= max || src[pos] != '<' {
		return -1
	}
	rest := src[pos+1:]
	switch {
	case hasPrefix(rest, "!--"):
		if end := indexAfter(src, pos+4, max, "-->"); end >= 0 {
			return end
		}
		return -1
	case hasPrefix(rest, "![CDATA["):
		if end := indexAfter(src, pos+9, max, "]]>"); end >= 0 {
			return end
		}
		return -1
	case len(rest) > 0 && rest[0] == '!':
		i := pos + 2
		for i < max && isAlphaByte(src[i]) {
			i++
		}
		if i == pos+2 {
			return -1
		}
		for i < max && src[i] != '>' {
			i++
		}
		if i < max {
			return i + 1
		}
		return -1
	case len(rest) > 0 && rest[0] == '?':
		if end := indexAfter(src, pos+2, max, "?>"); end >= 0 {
			return end
		}
		return -1
	case len(rest) > 0 && rest[0] == '/':
		return scanClosingTag(src, pos, max)
	default:
		return scanOpenTag(src, pos, max)
	}
}

func hasPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}

func indexAfter(src []byte, start, max int, marker string) int {
	for i := start; i+len(marker) <= max; i++ {
		if string(src[i:i+len(marker)]) == marker {
			return i + len(marker)
		}
	}
	return -1
}

func scanClosingTag(src []byte, pos, max int) int {
	i := pos + 2
	start := i
	for i < max && isTagNameChar(src[i]) {
		i++
	}
	if i == start {
		return -1
	}
	i = skipInlineSpaces(src, i, max)
	if i < max && src[i] == '>' {
		return i + 1
	}
	return -1
}

func scanOpenTag(src []byte, pos, max int) int {
	i := pos + 1
	start := i
	for i < max && isTagNameChar(src[i]) {
		i++
	}
	if i == start {
		return -1
	}
	for {
		beforeAttr := i
		spaced := skipInlineSpaces(src, i, max)
		if spaced == beforeAttr && !(i < max && (src[i] == '/' || src[i] == '>')) {
			return -1
		}
		i = spaced
		if i < max && src[i] == '/' {
			i++
		}
		if i < max && src[i] == '>' {
			return i + 1
		}
		if i >= max || !isAttrNameStart(src[i]) {
			return -1
		}
		nameStart := i
		for i < max && isAttrNameChar(src[i]) {
			i++
		}
		if i == nameStart {
			return -1
		}
		afterName := skipInlineSpaces(src, i, max)
		if afterName < max && src[afterName] == '=' {
			i = skipInlineSpaces(src, afterName+1, max)
			if i >= max {
				return -1
			}
			switch src[i] {
			case '"':
				j := i + 1
				for j < max && src[j] != '"' {
					j++
				}
				if j >= max {
					return -1
				}
				i = j + 1
			case '\'':
				j := i + 1
				for j < max && src[j] != '\'' {
					j++
				}
				if j >= max {
					return -1
				}
				i = j + 1
			default:
				j := i
				for j < max && isUnquotedAttrChar(src[j]) {
					j++
				}
				if j == i {
					return -1
				}
				i = j
			}
		} else {
			i = afterName
		}
	}
}

func skipInlineSpaces(src []byte, pos, max int) int {
	for pos < max && (src[pos] == ' ' || src[pos] == '\t' || src[pos] == '\n') {
		pos++
	}
	return pos
}

func isTagNameChar(b byte) bool {
	return isAlnumByte(b) || b == '-'
}

func isAttrNameStart(b byte) bool {
	return isAlphaByte(b) || b == '_' || b == ':'
}

func isAttrNameChar(b byte) bool {
	return isAlnumByte(b) || b == '_' || b == ':' || b == '.' || b == '-'
}

func isUnquotedAttrChar(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '"', '\'', '=', '<', '>', '`':
		return false
	}
	return true
}
