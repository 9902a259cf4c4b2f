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

// refDef is a registered link reference definition's destination and
// optional title.
type refDef struct {
	Destination string
	Title       string
}

type refMap map[string]refDef

// refMapEnv retrieves the document-wide reference map, creating it on
// first use. Both the reference-definition block rule and the inline
// link/image rules that resolve "[text][label]" share this instance via
// the parse's [mdit.Env].
func refMapEnv(env *mdit.Env) *refMap {
	return mdit.GetOrInsert[refMap](env, mdit.ScopeBlock)
}

func lookupRef(env *mdit.Env, label string) (refDef, bool) {
	m := *refMapEnv(env)
	d, ok := m[mdit.NormalizeLinkLabel(label)]
	return d, ok
}

func defineRef(env *mdit.Env, label string, d refDef) {
	m := refMapEnv(env)
	key := mdit.NormalizeLinkLabel(label)
	if _, exists := (*m)[key]; !exists {
		if *m == nil {
			*m = make(refMap)
		}
		(*m)[key] = d
	}
}

// parseLinkLabel parses a "[...]" link label starting at s[0] == '['. It
// returns the label's raw text (without brackets, escapes not yet
// resolved), the remainder of s after the closing ']', and whether a
// well-formed label of at most 999 characters was found. An empty or
// all-whitespace label is accepted; callers reject it where needed.
func parseLinkLabel(s string) (label, rest string, ok bool) {
	if len(s) == 0 || s[0] != '[' {
		return "", s, false
	}
	i := 1
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case '[':
			depth++
		case ']':
			if depth == 0 {
				if i-1 > 999 {
					return "", s, false
				}
				return s[1:i], s[i+1:], true
			}
			depth--
		}
		i++
	}
	return "", s, false
}

// parseLinkDestination parses a link destination: either a
// "<...>"-bracketed form or a bare form of balanced, non-space
// characters. It returns the destination text (bracket delimiters
// stripped, escapes not yet resolved) and the remainder of s.
func parseLinkDestination(s string) (dest, rest string, ok bool) {
	if len(s) == 0 {
		return "", s, false
	}
	if s[0] == '<' {
		i := 1
		for i < len(s) {
			switch s[i] {
			case '\\':
				i += 2
				continue
			case '>':
				return s[1:i], s[i+1:], true
			case '<', '\n':
				return "", s, false
			}
			i++
		}
		return "", s, false
	}

	i := 0
	depth := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\':
			i += 2
			continue
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				goto done
			}
			depth--
		case c <= ' ':
			goto done
		}
		i++
	}
done:
	if i == 0 || depth != 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

// parseLinkTitle parses a link title delimited by matching '"', '\'', or
// '(' ')' characters, requiring s to consist of only the title (callers
// trim surrounding whitespace first). It reports false if s is not
// entirely a well-formed title.
func parseLinkTitle(s string) (title string, ok bool) {
	if len(s) < 2 {
		return "", false
	}
	open := s[0]
	close := open
	if open == '(' {
		close = ')'
	}
	if open != '"' && open != '\'' && open != '(' {
		return "", false
	}
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case close:
			if i != len(s)-1 {
				return "", false
			}
			return unescapeText(s[1:i]), true
		}
		i++
	}
	return "", false
}

func unescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}
