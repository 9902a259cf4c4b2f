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

// autolinkRule recognizes a "<scheme:...>" URI autolink or an
// "<user@domain>" email autolink. Neither form allows whitespace or
// nested '<'/'>' inside, so the whole construct is resolved in one pass
// with no lookahead into other rules; no pack library implements
// CommonMark's restricted autolink grammar, so the scheme and email
// grammars are hand-rolled directly from spec 6.9.
type autolinkRule struct{}

func (autolinkRule) Run(state *mdit.InlineState, silent bool) bool {
	pos := state.Pos()
	src := state.Src()
	if pos >= state.PosMax() || src[pos] != '<' {
		return false
	}

	end := pos + 1
	for end < state.PosMax() && src[end] != '>' && src[end] != '<' && src[end] != ' ' && src[end] != '\n' {
		end++
	}
	if end >= state.PosMax() || src[end] != '>' {
		return false
	}
	inner := string(src[pos+1 : end])

	if uri, ok := parseAutolinkURI(inner); ok {
		if silent {
			state.SetPos(end + 1)
			return true
		}
		state.AppendChild(mdit.NewNode(&AutolinkPayload{URL: uri, VisibleText: inner}))
		state.SetPos(end + 1)
		return true
	}

	if email, ok := parseAutolinkEmail(inner); ok {
		if silent {
			state.SetPos(end + 1)
			return true
		}
		state.AppendChild(mdit.NewNode(&AutolinkPayload{URL: "mailto:" + email, IsEmail: true, VisibleText: inner}))
		state.SetPos(end + 1)
		return true
	}

	return false
}

// parseAutolinkURI validates s as a CommonMark autolink URI: a scheme of
// 2-32 letters/digits/"+-." starting with a letter, a ':', then any
// sequence of non-space, non-control, non-'<'/'>' characters.
func parseAutolinkURI(s string) (uri string, ok bool) {
	i := 0
	for i < len(s) && isSchemeChar(s[i]) {
		i++
	}
	if i < 2 || i > 32 || i >= len(s) || s[i] != ':' {
		return "", false
	}
	if !isAlphaByte(s[0]) {
		return "", false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "", false
		}
	}
	return s, true
}

func isSchemeChar(b byte) bool {
	return isAlnumByte(b) || b == '+' || b == '-' || b == '.'
}

// parseAutolinkEmail validates s as a bare email address per CommonMark's
// simplified autolink grammar: one or more of
// [a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-], an '@', then one or more
// dot-separated labels of letters, digits, and internal hyphens.
func parseAutolinkEmail(s string) (email string, ok bool) {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return "", false
	}
	local := s[:at]
	for i := 0; i < len(local); i++ {
		if !isEmailLocalChar(local[i]) {
			return "", false
		}
	}
	domain := s[at+1:]
	labels := strings.Split(domain, ".")
	if len(labels) == 0 {
		return "", false
	}
	for _, label := range labels {
		if !isValidDomainLabel(label) {
			return "", false
		}
	}
	return s, true
}

func isEmailLocalChar(b byte) bool {
	return isAlnumByte(b) || strings.IndexByte(".!#$%&'*+/=?^_`{|}~-", b) >= 0
}

func isValidDomainLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		if !isAlnumByte(label[i]) && label[i] != '-' {
			return false
		}
	}
	return true
}

func isAlphaByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isAlnumByte(b byte) bool {
	return isAlphaByte(b) || b >= '0' && b <= '9'
}
