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
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/nextmd/mdit"
)

var headingAtoms = [6]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// registerRenderers registers a [mdit.RenderFunc] for every payload kind
// this package defines. p is captured so link rendering can consult
// [mdit.Parser.LinkFormatter] and code block rendering can consult
// [mdit.Options.LangPrefix].
func registerRenderers(p *mdit.Parser) {
	r := p.Renderer()

	r.Register(ParagraphKind, func(r *mdit.Renderer, n *mdit.Node) {
		r.OpenTagAttrs(atom.P)
		r.NodeAttrs(n)
		r.CloseAngle()
		r.RenderChildren(n)
		r.CloseTag(atom.P)
		r.Bytes([]byte("\n"))
	})

	r.Register(HeadingKind, func(r *mdit.Renderer, n *mdit.Node) {
		h, _ := mdit.Cast[*HeadingPayload](n)
		tag := headingAtoms[clampHeadingLevel(h.Level)-1]
		r.OpenTagAttrs(tag)
		r.NodeAttrs(n)
		r.CloseAngle()
		r.RenderChildren(n)
		r.CloseTag(tag)
		r.Bytes([]byte("\n"))
	})

	r.Register(BlockquoteKind, func(r *mdit.Renderer, n *mdit.Node) {
		r.OpenTagAttrs(atom.Blockquote)
		r.NodeAttrs(n)
		r.CloseAngle()
		r.Bytes([]byte("\n"))
		r.RenderChildren(n)
		r.CloseTag(atom.Blockquote)
		r.Bytes([]byte("\n"))
	})

	r.Register(ListKind, func(r *mdit.Renderer, n *mdit.Node) {
		list, _ := mdit.Cast[*ListPayload](n)
		tag := atom.Ul
		if list.Ordered {
			tag = atom.Ol
		}
		r.OpenTagAttrs(tag)
		if list.Ordered && list.Start != 1 {
			r.Attr("start", strconv.Itoa(list.Start))
		}
		r.CloseAngle()
		r.Bytes([]byte("\n"))
		for _, item := range n.Children() {
			renderListItem(r, item, list.Tight)
		}
		r.CloseTag(tag)
		r.Bytes([]byte("\n"))
	})

	r.Register(ListItemKind, func(r *mdit.Renderer, n *mdit.Node) {
		renderListItem(r, n, false)
	})

	r.Register(ThematicBreakKind, func(r *mdit.Renderer, n *mdit.Node) {
		r.SelfCloseTag(atom.Hr)
		r.Bytes([]byte("\n"))
	})

	r.Register(CodeBlockKind, func(r *mdit.Renderer, n *mdit.Node) {
		cb, _ := mdit.Cast[*CodeBlockPayload](n)
		r.OpenTagAttrs(atom.Pre)
		r.CloseAngle()
		r.OpenTagAttrs(atom.Code)
		if lang := firstWord(cb.Info); lang != "" {
			r.Attr("class", p.Options().LangPrefix+lang)
		}
		r.CloseAngle()
		r.Text(cb.Content)
		r.CloseTag(atom.Code)
		r.CloseTag(atom.Pre)
		r.Bytes([]byte("\n"))
	})

	r.Register(HTMLBlockKind, func(r *mdit.Renderer, n *mdit.Node) {
		hb, _ := mdit.Cast[*HTMLBlockPayload](n)
		if p.Options().HTML {
			r.TextRaw(hb.Content)
		} else {
			r.Text(hb.Content)
		}
	})

	r.Register(EmphasisKind, func(r *mdit.Renderer, n *mdit.Node) {
		r.OpenTag(atom.Em)
		r.RenderChildren(n)
		r.CloseTag(atom.Em)
	})

	r.Register(StrongKind, func(r *mdit.Renderer, n *mdit.Node) {
		r.OpenTag(atom.Strong)
		r.RenderChildren(n)
		r.CloseTag(atom.Strong)
	})

	r.Register(CodeSpanKind, func(r *mdit.Renderer, n *mdit.Node) {
		cs, _ := mdit.Cast[*CodeSpanPayload](n)
		r.OpenTag(atom.Code)
		r.Text(cs.Content)
		r.CloseTag(atom.Code)
	})

	r.Register(LinkKind, func(r *mdit.Renderer, n *mdit.Node) {
		link, _ := mdit.Cast[*LinkPayload](n)
		lf := p.LinkFormatter()
		if !lf.ValidateLink(link.Destination) {
			r.RenderChildren(n)
			return
		}
		r.OpenTagAttrs(atom.A)
		r.Attr("href", lf.NormalizeLink(link.Destination))
		if link.Title != "" {
			r.Attr("title", link.Title)
		}
		r.CloseAngle()
		r.RenderChildren(n)
		r.CloseTag(atom.A)
	})

	r.Register(ImageKind, func(r *mdit.Renderer, n *mdit.Node) {
		img, _ := mdit.Cast[*ImagePayload](n)
		lf := p.LinkFormatter()
		if !lf.ValidateLink(img.Destination) {
			r.Text(flattenAltText(n))
			return
		}
		r.OpenTagAttrs(atom.Img)
		r.Attr("src", lf.NormalizeLink(img.Destination))
		r.Attr("alt", flattenAltText(n))
		if img.Title != "" {
			r.Attr("title", img.Title)
		}
		if r.XHTMLOut {
			r.Bytes([]byte(" />"))
		} else {
			r.Bytes([]byte(">"))
		}
	})

	r.Register(AutolinkKind, func(r *mdit.Renderer, n *mdit.Node) {
		al, _ := mdit.Cast[*AutolinkPayload](n)
		lf := p.LinkFormatter()
		r.OpenTagAttrs(atom.A)
		r.Attr("href", lf.NormalizeLink(al.URL))
		r.CloseAngle()
		r.Text(al.VisibleText)
		r.CloseTag(atom.A)
	})

	r.Register(HTMLInlineKind, func(r *mdit.Renderer, n *mdit.Node) {
		hi, _ := mdit.Cast[*HTMLInlinePayload](n)
		if p.Options().HTML {
			r.TextRaw(hi.Content)
		} else {
			r.Text(hi.Content)
		}
	})

	r.Register(HardBreakKind, func(r *mdit.Renderer, n *mdit.Node) {
		if r.XHTMLOut {
			r.Bytes([]byte("<br />\n"))
		} else {
			r.Bytes([]byte("<br>\n"))
		}
	})

	r.Register(SoftBreakKind, func(r *mdit.Renderer, n *mdit.Node) {
		if !p.Options().Breaks {
			r.Bytes([]byte("\n"))
			return
		}
		if r.XHTMLOut {
			r.Bytes([]byte("<br />\n"))
		} else {
			r.Bytes([]byte("<br>\n"))
		}
	})
}

// renderListItem renders one list item. When tight is true, each
// paragraph child's own <p> wrapper is omitted per CommonMark's
// tight-list rendering rule; a nested list or other non-paragraph child
// still renders in full regardless of tight.
func renderListItem(r *mdit.Renderer, n *mdit.Node, tight bool) {
	r.OpenTag(atom.Li)
	children := n.Children()
	if tight {
		for _, c := range children {
			if mdit.Is[*ParagraphPayload](c) {
				r.RenderChildren(c)
			} else {
				r.RenderNode(c)
			}
		}
	} else {
		r.Bytes([]byte("\n"))
		r.RenderChildren(n)
	}
	r.CloseTag(atom.Li)
	r.Bytes([]byte("\n"))
}

func clampHeadingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

func firstWord(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}
	return s
}

// flattenAltText reduces n's children to the plain text CommonMark
// requires for an image's alt attribute: markup-bearing descendants
// contribute their own text content rather than their rendered markup.
func flattenAltText(n *mdit.Node) string {
	var b strings.Builder
	var walk func(*mdit.Node)
	walk = func(n *mdit.Node) {
		switch {
		case mdit.Is[*mdit.TextPayload](n):
			text, _ := mdit.Cast[*mdit.TextPayload](n)
			b.WriteString(text.Content)
		case mdit.Is[*mdit.TextSpecialPayload](n):
			text, _ := mdit.Cast[*mdit.TextSpecialPayload](n)
			b.WriteString(text.Content)
		case mdit.Is[*CodeSpanPayload](n):
			cs, _ := mdit.Cast[*CodeSpanPayload](n)
			b.WriteString(cs.Content)
		case mdit.Is[*AutolinkPayload](n):
			al, _ := mdit.Cast[*AutolinkPayload](n)
			b.WriteString(al.VisibleText)
		case mdit.Is[*SoftBreakPayload](n):
			b.WriteByte('\n')
		case mdit.Is[*HardBreakPayload](n):
			b.WriteByte(' ')
		default:
			for _, c := range n.Children() {
				walk(c)
			}
		}
	}
	for _, c := range n.Children() {
		walk(c)
	}
	return b.String()
}
