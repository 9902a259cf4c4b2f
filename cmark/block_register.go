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

// registerBlockRules adds the base CommonMark block grammar to p. Leaf
// rules (thematic break, heading, fence) are tried before the indented
// code block so that a line satisfying both readings, such as "    ## not
// a heading" vs. a 4-space-indented fence, is resolved in CommonMark's
// favor; container rules (blockquote, list) are tried before the leaf
// rules since a line like "> text" or "- text" must be claimed by its
// container first. The reference-definition rule and the paragraph
// fallback run last, in that order.
func registerBlockRules(p *mdit.Parser) {
	p.AddBlockRule("blockquote", blockquoteRule{})
	p.AddBlockRule("list", listRule{})
	p.AddBlockRule("thematic_break", thematicBreakRule{})
	p.AddBlockRule("atx_heading", atxHeadingRule{})
	p.AddBlockRule("fenced_code", fencedCodeBlockRule{})
	p.AddBlockRule("html_block", htmlBlockRule{})
	p.AddBlockRule("indented_code", indentedCodeBlockRule{})
	p.AddBlockRule("reference_def", referenceDefRule{})
	p.AddBlockRule("paragraph", paragraphRule{}).AfterAll()
}
