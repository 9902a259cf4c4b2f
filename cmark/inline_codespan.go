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

// codeSpanRule recognizes a backtick-delimited code span: a run of N
// backticks, content, then the first run of exactly N backticks found
// afterward. A closer of the wrong length is not special; the scan
// continues past it looking for one that matches, and failing to find
// one at all means the opening run is ordinary text.
type codeSpanRule struct{}

func (codeSpanRule) Run(state *mdit.InlineState, silent bool) bool {
	pos := state.Pos()
	src := state.Src()
	if pos >= state.PosMax() || src[pos] != '`' {
		return false
	}

	openLen := 0
	for pos+openLen < state.PosMax() && src[pos+openLen] == '`' {
		openLen++
	}

	search := pos + openLen
	for search < state.PosMax() {
		if src[search] != '`' {
			search++
			continue
		}
		closeStart := search
		closeLen := 0
		for search < state.PosMax() && src[search] == '`' {
			search++
			closeLen++
		}
		if closeLen == openLen {
			if silent {
				state.SetPos(search)
				return true
			}
			content := string(src[pos+openLen : closeStart])
			state.AppendChild(mdit.NewNode(&CodeSpanPayload{Content: normalizeCodeSpanContent(content)}))
			state.SetPos(search)
			return true
		}
	}
	return false
}

// normalizeCodeSpanContent collapses line endings to spaces and strips a
// single leading and trailing space when the content is not all spaces,
// per CommonMark's code span whitespace rules.
func normalizeCodeSpanContent(content string) string {
	content = strings.ReplaceAll(content, "\n", " ")
	if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.Trim(content, " ") != "" {
		content = content[1 : len(content)-1]
	}
	return content
}
