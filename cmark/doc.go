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

// Package cmark registers the base CommonMark grammar -- block quotes,
// lists, headings, code blocks, thematic breaks, paragraphs, link
// reference definitions, and the inline constructs (emphasis, links,
// images, code spans, autolinks, raw HTML, entities, escapes, and line
// breaks) -- against an [mdit.Parser]'s rule chains. Nothing in this
// package is special-cased by the core engine: a caller could disable
// any one of these rules, or register a competing rule at the same
// position, and the rest of the grammar would keep working.
package cmark

import "github.com/nextmd/mdit"

// Register adds every rule in this package to p, in the dependency order
// the grammar requires (for instance, the paragraph fallback rule must
// run last in the block chain, and the reference-definition rule must
// run before it so it can claim reference-definition paragraphs first).
// It is the one entry point callers of this package need.
func Register(p *mdit.Parser) {
	registerBlockRules(p)
	registerInlineRules(p)
	registerRenderers(p)
}
