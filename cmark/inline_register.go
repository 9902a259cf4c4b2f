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

// registerInlineRules wires every inline-level rule this package defines
// into p's primary and post rule chains. Escape, entity, and code-span
// recognition are unordered relative to each other (each owns a disjoint
// leading byte) but must run before nothing in particular; they are
// listed first only for readability. The emphasis post rule runs After
// the engine's own delimiter-pairing post rule, which is always
// BeforeAll.
func registerInlineRules(p *mdit.Parser) {
	p.AddInlineRule("escape", escapeRule{})
	p.AddInlineRule("entity", entityRule{})
	p.AddInlineRule("code_span", codeSpanRule{})
	p.AddInlineRule("autolink", autolinkRule{})
	p.AddInlineRule("html_inline", htmlInlineRule{})
	p.AddInlineRule("link", linkRule{})
	p.AddInlineRule("image", imageRule{})
	p.AddInlineRule("emphasis", emphasisRule{})
	p.AddInlineRule("break", breakRule{})

	p.AddInlinePostRule("emphasis_post", emphasisPostRule{})
}
