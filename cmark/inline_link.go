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

// linkRule recognizes "[text](dest "title")", "[text][label]",
// "[text][]", and "[text]" (shortcut reference) forms. The bracketed
// text is parsed as a nested sub-run of the same [mdit.InlineState] via
// [mdit.Parser.TokenizeInlineRange], so that emphasis and other
// delimiters spanning the link text still pair correctly against the
// single document-wide post pass. A link cannot itself contain another
// link; [mdit.InlineState.LinkNesting] enforces that.
type linkRule struct{}

func (linkRule) Run(state *mdit.InlineState, silent bool) bool {
	return runLinkLike(state, silent, false)
}

// imageRule recognizes "![alt](dest \"title\")" and its reference-link
// equivalents, identically to linkRule but for the "!["-prefixed form
// and wrapping an [ImagePayload] rather than a [LinkPayload]. Unlike
// links, images may nest inside link text and may themselves contain
// link-like bracketed text in their alt content.
type imageRule struct{}

func (imageRule) Run(state *mdit.InlineState, silent bool) bool {
	return runLinkLike(state, silent, true)
}

func runLinkLike(state *mdit.InlineState, silent, image bool) bool {
	pos := state.Pos()
	src := state.Src()
	labelStart := pos
	if image {
		if pos+1 >= state.PosMax() || src[pos] != '!' || src[pos+1] != '[' {
			return false
		}
		labelStart = pos + 1
	} else {
		if pos >= state.PosMax() || src[pos] != '[' {
			return false
		}
		if state.LinkNesting() > 0 {
			return false
		}
	}

	label, rest, ok := parseLinkLabel(string(src[labelStart:state.PosMax()]))
	if !ok {
		return false
	}
	afterLabelPos := state.PosMax() - len(rest)

	dest, title, tailLen, ok := tryParseLinkTail(string(src[afterLabelPos:state.PosMax()]), label, state.Env())
	if !ok {
		return false
	}
	end := afterLabelPos + tailLen

	if silent {
		state.SetPos(end)
		return true
	}

	// The link formatter's NormalizeLink runs before ValidateLink, and a
	// destination it rejects falls back to literal text rather than
	// becoming a link or image (spec §4.h).
	lf := state.Parser().LinkFormatter()
	if !lf.ValidateLink(lf.NormalizeLink(dest)) {
		return false
	}

	var node *mdit.Node
	if image {
		node = mdit.NewNode(&ImagePayload{Destination: dest, Title: title})
	} else {
		node = mdit.NewNode(&LinkPayload{Destination: dest, Title: title})
	}
	state.AppendChild(node)

	innerStart := labelStart + 1
	innerEnd := afterLabelPos - 1
	state.PushParent(node)
	if !image {
		state.PushLinkNesting()
	}
	savedPos := state.Pos()
	state.SetPos(innerStart)
	state.Parser().TokenizeInlineRange(state, innerEnd)
	state.SetPos(savedPos)
	if !image {
		state.PopLinkNesting()
	}
	state.PopParent()

	state.SetPos(end)
	return true
}

// tryParseLinkTail parses whatever follows a link or image label's
// closing ']' (rest, which begins right after it): an inline
// "(dest "title")" tail, a reference "[label]" or "[]" tail resolved
// against the document's reference map, or (if neither is present) a
// shortcut reference using label itself. It returns the resolved
// destination and title and the number of bytes of rest consumed.
func tryParseLinkTail(rest, label string, env *mdit.Env) (dest, title string, tailLen int, ok bool) {
	if len(rest) > 0 && rest[0] == '(' {
		i := skipWhitespaceNewline(rest, 1)
		destStr := rest[i:]
		var destRest string
		if len(destStr) > 0 && destStr[0] == ')' {
			dest, destRest = "", destStr
		} else {
			d, r, okDest := parseLinkDestination(destStr)
			if !okDest {
				return "", "", 0, false
			}
			dest, destRest = unescapeText(d), r
		}
		j := len(rest) - len(destRest)

		beforeTitle := j
		j = skipWhitespaceNewline(rest, j)
		hadSpace := j > beforeTitle
		if hadSpace && j < len(rest) && rest[j] != ')' {
			t, tr, okTitle := scanLinkTitlePrefix(rest[j:])
			if !okTitle {
				return "", "", 0, false
			}
			title = t
			j = len(rest) - len(tr)
		}
		j = skipWhitespaceNewline(rest, j)
		if j >= len(rest) || rest[j] != ')' {
			return "", "", 0, false
		}
		return dest, title, j + 1, true
	}

	if len(rest) > 0 && rest[0] == '[' {
		refLabel, r2, okLabel := parseLinkLabel(rest)
		if !okLabel {
			return "", "", 0, false
		}
		if strings.TrimSpace(refLabel) == "" {
			refLabel = label
		}
		d, found := lookupRef(env, refLabel)
		if !found {
			return "", "", 0, false
		}
		return d.Destination, d.Title, len(rest) - len(r2), true
	}

	d, found := lookupRef(env, label)
	if !found {
		return "", "", 0, false
	}
	return d.Destination, d.Title, 0, true
}

// scanLinkTitlePrefix parses a link title from the start of s, returning
// the decoded title and the unconsumed remainder of s.
func scanLinkTitlePrefix(s string) (title, rest string, ok bool) {
	if len(s) == 0 {
		return "", s, false
	}
	open := s[0]
	closeCh := open
	if open == '(' {
		closeCh = ')'
	}
	if open != '"' && open != '\'' && open != '(' {
		return "", s, false
	}
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case closeCh:
			return unescapeText(s[1:i]), s[i+1:], true
		}
		i++
	}
	return "", s, false
}

// skipWhitespaceNewline returns the index of the first byte at or after i
// in s that is not a space, tab, or newline.
func skipWhitespaceNewline(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}
