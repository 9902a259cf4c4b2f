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

// ParagraphPayload is a paragraph block. Its children are the result of
// parsing its source as inline content.
type ParagraphPayload struct{}

func (*ParagraphPayload) Kind() mdit.PayloadKind { return ParagraphKind }

// ParagraphKind identifies [ParagraphPayload] nodes.
var ParagraphKind = mdit.KindOf[*ParagraphPayload]()

// HeadingPayload is an ATX (#) or Setext (underlined) heading.
type HeadingPayload struct {
	Level  int
	Setext bool
}

func (*HeadingPayload) Kind() mdit.PayloadKind { return HeadingKind }

// HeadingKind identifies [HeadingPayload] nodes.
var HeadingKind = mdit.KindOf[*HeadingPayload]()

// BlockquotePayload is a block quote container.
type BlockquotePayload struct{}

func (*BlockquotePayload) Kind() mdit.PayloadKind { return BlockquoteKind }

// BlockquoteKind identifies [BlockquotePayload] nodes.
var BlockquoteKind = mdit.KindOf[*BlockquotePayload]()

// ListPayload is an ordered or bullet list.
type ListPayload struct {
	Ordered bool
	// Start is the first item's number, meaningful only when Ordered.
	Start int
	// Tight reports whether list items should render without wrapping
	// paragraph tags around single-paragraph content.
	Tight bool
	// Marker is the bullet character ('-', '*', '+') or the delimiter
	// character after an ordered marker's digits ('.' or ')').
	Marker byte
}

func (*ListPayload) Kind() mdit.PayloadKind { return ListKind }

// ListKind identifies [ListPayload] nodes.
var ListKind = mdit.KindOf[*ListPayload]()

// ListItemPayload is one item of a [ListPayload].
type ListItemPayload struct{}

func (*ListItemPayload) Kind() mdit.PayloadKind { return ListItemKind }

// ListItemKind identifies [ListItemPayload] nodes.
var ListItemKind = mdit.KindOf[*ListItemPayload]()

// ThematicBreakPayload is a thematic break (<hr>).
type ThematicBreakPayload struct{}

func (*ThematicBreakPayload) Kind() mdit.PayloadKind { return ThematicBreakKind }

// ThematicBreakKind identifies [ThematicBreakPayload] nodes.
var ThematicBreakKind = mdit.KindOf[*ThematicBreakPayload]()

// CodeBlockPayload is an indented or fenced code block. Its Content is
// the literal text to render inside <pre><code>, already including a
// trailing newline per line.
type CodeBlockPayload struct {
	Content string
	Fenced  bool
	// Info is the fenced code block's info string, or empty for an
	// indented code block or a fence with no info string.
	Info string
}

func (*CodeBlockPayload) Kind() mdit.PayloadKind { return CodeBlockKind }

// CodeBlockKind identifies [CodeBlockPayload] nodes.
var CodeBlockKind = mdit.KindOf[*CodeBlockPayload]()

// HTMLBlockPayload is a raw HTML block. Content is emitted verbatim.
type HTMLBlockPayload struct {
	Content string
}

func (*HTMLBlockPayload) Kind() mdit.PayloadKind { return HTMLBlockKind }

// HTMLBlockKind identifies [HTMLBlockPayload] nodes.
var HTMLBlockKind = mdit.KindOf[*HTMLBlockPayload]()

// EmphasisPayload is emphasized (<em>) inline content.
type EmphasisPayload struct{}

func (*EmphasisPayload) Kind() mdit.PayloadKind { return EmphasisKind }

// EmphasisKind identifies [EmphasisPayload] nodes.
var EmphasisKind = mdit.KindOf[*EmphasisPayload]()

// StrongPayload is strongly emphasized (<strong>) inline content.
type StrongPayload struct{}

func (*StrongPayload) Kind() mdit.PayloadKind { return StrongKind }

// StrongKind identifies [StrongPayload] nodes.
var StrongKind = mdit.KindOf[*StrongPayload]()

// CodeSpanPayload is an inline code span. Content has already had its
// backtick-fence whitespace stripping and line-ending normalization
// applied.
type CodeSpanPayload struct {
	Content string
}

func (*CodeSpanPayload) Kind() mdit.PayloadKind { return CodeSpanKind }

// CodeSpanKind identifies [CodeSpanPayload] nodes.
var CodeSpanKind = mdit.KindOf[*CodeSpanPayload]()

// LinkPayload is an inline link. Its children are the link's text.
type LinkPayload struct {
	Destination string
	Title       string
}

func (*LinkPayload) Kind() mdit.PayloadKind { return LinkKind }

// LinkKind identifies [LinkPayload] nodes.
var LinkKind = mdit.KindOf[*LinkPayload]()

// ImagePayload is an inline image. Its children are the image's alt text
// source (never rendered as markup, only flattened to a string for the
// alt attribute).
type ImagePayload struct {
	Destination string
	Title       string
}

func (*ImagePayload) Kind() mdit.PayloadKind { return ImageKind }

// ImageKind identifies [ImagePayload] nodes.
var ImageKind = mdit.KindOf[*ImagePayload]()

// AutolinkPayload is an autolink (<http://example.com> or
// <user@example.com>).
type AutolinkPayload struct {
	URL       string
	IsEmail   bool
	VisibleText string
}

func (*AutolinkPayload) Kind() mdit.PayloadKind { return AutolinkKind }

// AutolinkKind identifies [AutolinkPayload] nodes.
var AutolinkKind = mdit.KindOf[*AutolinkPayload]()

// HTMLInlinePayload is a raw inline HTML tag or comment.
type HTMLInlinePayload struct {
	Content string
}

func (*HTMLInlinePayload) Kind() mdit.PayloadKind { return HTMLInlineKind }

// HTMLInlineKind identifies [HTMLInlinePayload] nodes.
var HTMLInlineKind = mdit.KindOf[*HTMLInlinePayload]()

// HardBreakPayload is a hard line break (<br>).
type HardBreakPayload struct{}

func (*HardBreakPayload) Kind() mdit.PayloadKind { return HardBreakKind }

// HardBreakKind identifies [HardBreakPayload] nodes.
var HardBreakKind = mdit.KindOf[*HardBreakPayload]()

// SoftBreakPayload is a soft line break (a single "\n" in the source that
// did not qualify as a hard break).
type SoftBreakPayload struct{}

func (*SoftBreakPayload) Kind() mdit.PayloadKind { return SoftBreakKind }

// SoftBreakKind identifies [SoftBreakPayload] nodes.
var SoftBreakKind = mdit.KindOf[*SoftBreakPayload]()
