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

// A Payload is the typed content carried by a [Node]. The engine itself
// only knows three payload kinds by name ([TextPayload], [TextSpecialPayload],
// and [InlineContainerPayload]); every other payload kind -- headings,
// paragraphs, emphasis, links, and so on -- is defined and interpreted
// entirely by the plugin that registers it.
type Payload interface {
	// Kind returns the payload's identity. Implementations almost always
	// return a package-level PayloadKind value computed once with
	// [KindOf].
	Kind() PayloadKind
}

// PayloadKind identifies a [Payload] implementation by Go type rather than
// by name, so two plugins may both call their payload type "Heading"
// without colliding. Compare PayloadKind values with ==.
type PayloadKind = RuleID

// KindOf returns the PayloadKind for the payload type P.
//
//	var HeadingKind = mdit.KindOf[*HeadingPayload]()
func KindOf[P Payload]() PayloadKind {
	return ID[P]()
}

// Attr is a single rendered HTML attribute. Attributes are stored on a
// [Node] as an ordered list, and that order is observable in rendered
// output.
type Attr struct {
	Name  string
	Value string
}

// Node is a single element of the parsed document tree: a [Payload] plus
// its children, its rendered attributes, and optional source-map
// information. The zero Node is not meaningful; construct one with
// [NewNode].
type Node struct {
	payload  Payload
	children []*Node
	attrs    []Attr
	srcMap   *SrcMap
}

// NewNode returns a new, childless Node wrapping payload.
func NewNode(payload Payload) *Node {
	return &Node{payload: payload}
}

// Kind returns the node's payload kind, or nil if n is nil.
func (n *Node) Kind() PayloadKind {
	if n == nil {
		return nil
	}
	return n.payload.Kind()
}

// Is reports whether n's payload is of type P.
func Is[P Payload](n *Node) bool {
	if n == nil {
		return false
	}
	_, ok := n.payload.(P)
	return ok
}

// Cast downcasts n's payload to type P, returning the zero value of P and
// false if n is nil or its payload is not of type P. This is the
// "safe downcast" operation from spec §3: rules that want to inspect a
// node they didn't create use Cast instead of a type switch, so that the
// set of payload kinds they handle stays open.
func Cast[P Payload](n *Node) (P, bool) {
	var zero P
	if n == nil {
		return zero, false
	}
	p, ok := n.payload.(P)
	return p, ok
}

// Payload returns n's payload as the Payload interface.
func (n *Node) Payload() Payload {
	if n == nil {
		return nil
	}
	return n.payload
}

// Replace swaps n's payload for newPayload, preserving n's children,
// attributes, and source map (spec §4.b).
func (n *Node) Replace(newPayload Payload) {
	n.payload = newPayload
}

// Children returns n's children. The caller must not modify the returned
// slice.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildCount returns the number of children n has.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns n's i'th child.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// AppendChild appends child to n's children.
func (n *Node) AppendChild(child *Node) {
	n.children = append(n.children, child)
}

// SetChildren replaces n's entire child list.
func (n *Node) SetChildren(children []*Node) {
	n.children = children
}

// Attrs returns n's attributes in insertion order. The caller must not
// modify the returned slice.
func (n *Node) Attrs() []Attr {
	if n == nil {
		return nil
	}
	return n.attrs
}

// Attr returns the value of the first attribute named name and whether it
// was present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the value of the first attribute named name, or appends a
// new attribute if none exists yet.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// AppendAttr appends a new attribute without checking for an existing one
// of the same name, matching the teacher's attribute-list append
// semantics (repeated names are preserved verbatim, e.g. for
// data-sourcepos-style plugins that want to add several attributes of
// related names).
func (n *Node) AppendAttr(name, value string) {
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// SrcMap returns n's source-map range, or nil if none was recorded.
func (n *Node) SrcMap() *SrcMap {
	if n == nil {
		return nil
	}
	return n.srcMap
}

// SetSrcMap records n's source-map range.
func (n *Node) SetSrcMap(sm SrcMap) {
	n.srcMap = &sm
}
