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

import (
	"golang.org/x/net/html/atom"
)

// RenderFunc renders one node's own markup (but not necessarily its
// children; most implementations call [Renderer.RenderChildren]
// themselves) to r's output buffer. Plugins register a RenderFunc per
// [PayloadKind] with [Renderer.Register]; the core only supplies
// defaults for the three payload kinds it knows by name.
type RenderFunc func(r *Renderer, n *Node)

// A Renderer converts a parsed tree into HTML, dispatching on each
// node's [PayloadKind] to a registered [RenderFunc] (spec §4.g). This
// replaces a closed per-kind switch with an open table so that a
// plugin-defined payload kind renders exactly like a built-in one.
//
// # Security considerations
//
// CommonMark permits the use of raw HTML, which can introduce
// Cross-Site Scripting (XSS) vulnerabilities when used with untrusted
// input. FilterTag can be used to force particular tags to render as
// escaped text instead of markup; for untrusted input this should be
// combined with an HTML sanitizer downstream.
type Renderer struct {
	// FilterTag is a predicate reporting whether an element with the
	// given lowercased tag name should have its leading angle bracket
	// escaped instead of rendered as markup. A nil FilterTag disables
	// filtering.
	FilterTag func(tag []byte) bool
	// XHTMLOut, if true, self-closes void elements as "<br />" instead of
	// "<br>".
	XHTMLOut bool

	handlers map[PayloadKind]RenderFunc
	dst      []byte
}

// NewRenderer returns a Renderer with handlers for the core's three named
// payload kinds already registered; every other kind renders its children
// unless a plugin calls [Renderer.Register].
func NewRenderer() *Renderer {
	r := &Renderer{handlers: make(map[PayloadKind]RenderFunc)}
	r.Register(TextKind(), func(r *Renderer, n *Node) {
		text, _ := Cast[*TextPayload](n)
		r.Text(text.Content)
	})
	r.Register(TextSpecialKind(), func(r *Renderer, n *Node) {
		special, _ := Cast[*TextSpecialPayload](n)
		r.Text(special.Content)
	})
	r.Register(InlineContainerKind(), func(r *Renderer, n *Node) {
		r.RenderChildren(n)
	})
	return r
}

// Register sets the RenderFunc for kind, replacing any previous
// registration (so a plugin may override a built-in).
func (r *Renderer) Register(kind PayloadKind, fn RenderFunc) {
	r.handlers[kind] = fn
}

// Render renders root (typically a [DocumentPayload] tree root) to an
// HTML string.
func (r *Renderer) Render(root *Node) string {
	r.dst = r.dst[:0]
	r.RenderChildren(root)
	return string(r.dst)
}

// RenderNode dispatches n to its registered [RenderFunc], or renders its
// children directly if no handler is registered for n's [PayloadKind].
func (r *Renderer) RenderNode(n *Node) {
	if fn, ok := r.handlers[n.Kind()]; ok {
		fn(r, n)
		return
	}
	r.RenderChildren(n)
}

// RenderChildren renders each of n's children in order.
func (r *Renderer) RenderChildren(n *Node) {
	for _, c := range n.Children() {
		r.RenderNode(c)
	}
}

// OpenTag appends an opening tag, e.g. "<p>", honoring FilterTag.
func (r *Renderer) OpenTag(name atom.Atom) {
	r.OpenTagAttrs(name)
	r.dst = append(r.dst, '>')
}

// OpenTagAttrs appends an opening tag's name without its closing angle
// bracket, e.g. "<a", so the caller can append attributes before closing
// it with a literal ">" or by calling [Renderer.CloseAngle].
func (r *Renderer) OpenTagAttrs(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+1:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;"...)
		r.dst = append(r.dst, name.String()...)
	}
}

// CloseAngle appends a literal ">" to close a tag opened with
// [Renderer.OpenTagAttrs] after attributes were appended.
func (r *Renderer) CloseAngle() {
	r.dst = append(r.dst, '>')
}

// SelfCloseTag appends a self-closing tag, e.g. "<hr>" or "<hr />" when
// XHTMLOut is set.
func (r *Renderer) SelfCloseTag(name atom.Atom) {
	r.OpenTagAttrs(name)
	if r.XHTMLOut {
		r.dst = append(r.dst, " />"...)
	} else {
		r.dst = append(r.dst, '>')
	}
}

// CloseTag appends a closing tag, e.g. "</p>", honoring FilterTag.
func (r *Renderer) CloseTag(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+1:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;/"...)
		r.dst = append(r.dst, name.String()...)
	}
	r.dst = append(r.dst, '>')
}

// Attr appends a rendered attribute, e.g. ` href="..."`, HTML-escaping
// value.
func (r *Renderer) Attr(name, value string) {
	r.dst = append(r.dst, ' ')
	r.dst = append(r.dst, name...)
	r.dst = append(r.dst, `="`...)
	r.dst = escapeHTML(r.dst, []byte(value))
	r.dst = append(r.dst, '"')
}

// NodeAttrs renders all of n's attributes, in order, as if by repeated
// calls to [Renderer.Attr].
func (r *Renderer) NodeAttrs(n *Node) {
	for _, a := range n.Attrs() {
		r.Attr(a.Name, a.Value)
	}
}

// Text appends s, HTML-escaped.
func (r *Renderer) Text(s string) {
	r.dst = escapeHTML(r.dst, []byte(s))
}

// TextRaw appends s verbatim, without escaping. Rules for raw HTML
// content use this.
func (r *Renderer) TextRaw(s string) {
	r.dst = append(r.dst, s...)
}

// Bytes appends raw bytes to the output buffer directly, bypassing any
// RenderFunc dispatch. Plugins use this for fixed markup that never
// needs escaping, e.g. a literal "\n".
func (r *Renderer) Bytes(b []byte) {
	r.dst = append(r.dst, b...)
}

// escapeHTML appends the HTML-escaped version of src to dst.
func escapeHTML(dst, src []byte) []byte {
	verbatimStart := 0
	for i, b := range src {
		switch b {
		case '&':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&amp;"...)
			verbatimStart = i + 1
		case '\'':
			dst = append(dst, src[verbatimStart:i]...)
			// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
			dst = append(dst, "&#39;"...)
			verbatimStart = i + 1
		case '<':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&lt;"...)
			verbatimStart = i + 1
		case '>':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&gt;"...)
			verbatimStart = i + 1
		case '"':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&quot;"...)
			verbatimStart = i + 1
		}
	}
	if verbatimStart < len(src) {
		dst = append(dst, src[verbatimStart:]...)
	}
	return dst
}
