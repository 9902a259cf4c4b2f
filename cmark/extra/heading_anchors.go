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

// Package extra holds optional plugins that build on top of the base
// [cmark] grammar using the same public registration API a third party
// would use: nothing in this package reaches into cmark's unexported
// internals.
package extra

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/nextmd/mdit"
	"github.com/nextmd/mdit/cmark"
)

// RegisterHeadingAnchors adds a core rule to p that assigns a unique
// "id" attribute to every heading, slugified from its flattened text
// content, colliding names disambiguated with a "-2", "-3", ... suffix.
// It runs AfterAll so it sees the fully expanded inline tree.
func RegisterHeadingAnchors(p *mdit.Parser) {
	p.AddCoreRule("heading_anchors", headingAnchorRule{}).AfterAll()
}

type headingAnchorRule struct{}

func (headingAnchorRule) Run(state *mdit.CoreState) error {
	seen := make(map[string]int)
	mdit.Walk(state.Root, &mdit.WalkOptions{
		Pre: func(c *mdit.Cursor) bool {
			n := c.Node()
			if !mdit.Is[*cmark.HeadingPayload](n) {
				return true
			}
			slug := slugify(flattenText(n))
			if slug == "" {
				slug = "section"
			}
			seen[slug]++
			if count := seen[slug]; count > 1 {
				slug = slug + "-" + strconv.Itoa(count)
			}
			n.SetAttr("id", slug)
			return true
		},
	})
	return nil
}

func flattenText(n *mdit.Node) string {
	var b strings.Builder
	var walk func(*mdit.Node)
	walk = func(n *mdit.Node) {
		if text, ok := mdit.Cast[*mdit.TextPayload](n); ok {
			b.WriteString(text.Content)
			return
		}
		if text, ok := mdit.Cast[*mdit.TextSpecialPayload](n); ok {
			b.WriteString(text.Content)
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	for _, c := range n.Children() {
		walk(c)
	}
	return b.String()
}

// slugify lowercases s, replaces runs of non-alphanumeric characters
// with a single hyphen, and trims leading/trailing hyphens, matching the
// convention GitHub-flavored heading anchors use.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
