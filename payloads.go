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

package mdit

// TextPayload is literal text content. It is one of the three payload
// kinds the core engine knows by name (spec §3); everything else is
// opaque to the core and interpreted only by the plugins that registered
// it.
type TextPayload struct {
	Content string
}

// Kind implements [Payload].
func (*TextPayload) Kind() PayloadKind { return textPayloadKind }

var textPayloadKind = KindOf[*TextPayload]()

// TextKind is the [PayloadKind] of [TextPayload] nodes.
func TextKind() PayloadKind { return textPayloadKind }

// NewText returns a new Node wrapping a [TextPayload] with the given
// content.
func NewText(content string) *Node {
	return NewNode(&TextPayload{Content: content})
}

// TextSpecialPayload is substituted text -- the result of an escape or
// entity expansion -- that still carries the original Markdown so that
// rules running later (or a sourcepos-style renderer) can recover what
// was actually written. Rendering a TextSpecialPayload should emit
// Content, not Markup.
type TextSpecialPayload struct {
	Content string
	Markup  string
}

// Kind implements [Payload].
func (*TextSpecialPayload) Kind() PayloadKind { return textSpecialPayloadKind }

var textSpecialPayloadKind = KindOf[*TextSpecialPayload]()

// TextSpecialKind is the [PayloadKind] of [TextSpecialPayload] nodes.
func TextSpecialKind() PayloadKind { return textSpecialPayloadKind }

// InlineContainerPayload is a block-level placeholder holding raw,
// unparsed inline Markdown source. The core chain's inline rule
// replaces every InlineContainerPayload node's children with the parsed
// inline tree and leaves the node itself in place, carrying no further
// meaning once inline parsing has run (spec §3, "inline container").
type InlineContainerPayload struct {
	// Source is the raw inline text to be tokenized.
	Source string
	// LineOffsets maps byte offsets within Source to 0-based source line
	// numbers, ascending, so that inline rules can recover srcmap
	// information after soft-wrapping has erased line boundaries from the
	// joined text.
	LineOffsets []LineOffset
}

// LineOffset records that the line numbered Line begins at byte offset
// Offset within an [InlineContainerPayload]'s Source.
type LineOffset struct {
	Offset int
	Line   int
}

// Kind implements [Payload].
func (*InlineContainerPayload) Kind() PayloadKind { return inlineContainerPayloadKind }

var inlineContainerPayloadKind = KindOf[*InlineContainerPayload]()

// InlineContainerKind is the [PayloadKind] of [InlineContainerPayload]
// nodes.
func InlineContainerKind() PayloadKind { return inlineContainerPayloadKind }

// LineAt returns the source line number corresponding to byte offset off
// within the container's Source.
func (p *InlineContainerPayload) LineAt(off int) int {
	line := 0
	for _, lo := range p.LineOffsets {
		if lo.Offset > off {
			break
		}
		line = lo.Line
	}
	return line
}

// DocumentPayload is the payload of the tree root returned by
// [Parser.Parse]. It carries no data of its own; its presence lets the
// root be an ordinary [Node] rather than a special case.
type DocumentPayload struct{}

// Kind implements [Payload].
func (*DocumentPayload) Kind() PayloadKind { return documentPayloadKind }

var documentPayloadKind = KindOf[*DocumentPayload]()

// DocumentKind is the [PayloadKind] of the tree root.
func DocumentKind() PayloadKind { return documentPayloadKind }
