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

import "testing"

type stubPayload struct{ text string }

var stubKind = KindOf[*stubPayload]()

func (*stubPayload) Kind() PayloadKind { return stubKind }

type otherStubPayload struct{}

func (*otherStubPayload) Kind() PayloadKind { return KindOf[*otherStubPayload]() }

func TestNodeIsCast(t *testing.T) {
	n := NewNode(&stubPayload{text: "hi"})
	if !Is[*stubPayload](n) {
		t.Error("Is[*stubPayload] = false; want true")
	}
	if Is[*otherStubPayload](n) {
		t.Error("Is[*otherStubPayload] = true; want false")
	}
	p, ok := Cast[*stubPayload](n)
	if !ok || p.text != "hi" {
		t.Errorf("Cast = (%v, %v); want (&stubPayload{\"hi\"}, true)", p, ok)
	}
	if _, ok := Cast[*otherStubPayload](n); ok {
		t.Error("Cast[*otherStubPayload] succeeded on a stubPayload node")
	}
}

func TestNodeNilSafety(t *testing.T) {
	var n *Node
	if n.Kind() != nil {
		t.Error("nil Node.Kind() should be nil")
	}
	if n.Payload() != nil {
		t.Error("nil Node.Payload() should be nil")
	}
	if n.Children() != nil {
		t.Error("nil Node.Children() should be nil")
	}
	if n.ChildCount() != 0 {
		t.Error("nil Node.ChildCount() should be 0")
	}
	if n.Attrs() != nil {
		t.Error("nil Node.Attrs() should be nil")
	}
	if n.SrcMap() != nil {
		t.Error("nil Node.SrcMap() should be nil")
	}
	if Is[*stubPayload](n) {
		t.Error("Is on a nil Node should be false")
	}
}

func TestNodeChildren(t *testing.T) {
	parent := NewNode(&stubPayload{})
	a := NewNode(&stubPayload{text: "a"})
	b := NewNode(&stubPayload{text: "b"})
	parent.AppendChild(a)
	parent.AppendChild(b)

	if got := parent.ChildCount(); got != 2 {
		t.Fatalf("ChildCount() = %d; want 2", got)
	}
	if parent.Child(0) != a || parent.Child(1) != b {
		t.Error("Child(i) did not return children in append order")
	}

	c := NewNode(&stubPayload{text: "c"})
	parent.SetChildren([]*Node{c})
	if parent.ChildCount() != 1 || parent.Child(0) != c {
		t.Error("SetChildren did not replace the child list")
	}
}

func TestNodeAttrs(t *testing.T) {
	n := NewNode(&stubPayload{})
	n.SetAttr("class", "a")
	n.SetAttr("id", "x")
	n.SetAttr("class", "b") // overwrite, not append

	if v, ok := n.Attr("class"); !ok || v != "b" {
		t.Errorf("Attr(class) = (%q, %v); want (\"b\", true)", v, ok)
	}
	if len(n.Attrs()) != 2 {
		t.Errorf("Attrs() = %v; want 2 entries", n.Attrs())
	}

	n.AppendAttr("class", "c")
	if len(n.Attrs()) != 3 {
		t.Errorf("after AppendAttr, Attrs() = %v; want 3 entries", n.Attrs())
	}
	if _, ok := n.Attr("missing"); ok {
		t.Error("Attr(missing) reported ok=true")
	}
}

func TestNodeReplacePreservesChildrenAndAttrs(t *testing.T) {
	n := NewNode(&stubPayload{text: "old"})
	child := NewNode(&stubPayload{text: "child"})
	n.AppendChild(child)
	n.SetAttr("id", "keep-me")
	n.SetSrcMap(SrcMap{StartLine: 1, EndLine: 2})

	n.Replace(&otherStubPayload{})

	if !Is[*otherStubPayload](n) {
		t.Error("Replace did not swap the payload")
	}
	if n.ChildCount() != 1 || n.Child(0) != child {
		t.Error("Replace should preserve children")
	}
	if v, ok := n.Attr("id"); !ok || v != "keep-me" {
		t.Error("Replace should preserve attributes")
	}
	if n.SrcMap() == nil || n.SrcMap().StartLine != 1 {
		t.Error("Replace should preserve the source map")
	}
}
