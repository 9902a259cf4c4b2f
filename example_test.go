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

package mdit_test

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/nextmd/mdit"
	"github.com/nextmd/mdit/cmark"
)

func Example() {
	p := mdit.New(mdit.WithHTML(true))
	cmark.Register(p)
	fmt.Print(p.ParseAndRender("Hello, **World**!\n"))
	// Output:
	// <p>Hello, <strong>World</strong>!</p>
}

// markPayload and its rule demonstrate registering a new inline construct
// entirely outside the cmark package: ==text== wraps text in <mark>.
type markPayload struct{ dummy int }

var markKind = mdit.KindOf[*markPayload]()

func (*markPayload) Kind() mdit.PayloadKind { return markKind }

type markRule struct{}

func (markRule) Run(state *mdit.InlineState, silent bool) bool {
	src := state.Src()
	pos := state.Pos()
	if pos+1 >= state.PosMax() || src[pos] != '=' || src[pos+1] != '=' {
		return false
	}
	closer := strings.Index(string(src[pos+2:state.PosMax()]), "==")
	if closer < 0 {
		return false
	}
	closer += pos + 2
	if silent {
		state.SetPos(closer + 2)
		return true
	}
	node := mdit.NewNode(&markPayload{})
	state.PushParent(node)
	state.SetPos(pos + 2)
	state.Parser().TokenizeInlineRange(state, closer)
	state.PopParent()
	state.AppendChild(node)
	state.SetPos(closer + 2)
	return true
}

func ExampleParser_AddInlineRule() {
	p := mdit.New(mdit.WithHTML(true))
	cmark.Register(p)
	p.AddInlineRule("mark", markRule{})
	p.Renderer().Register(markKind, func(r *mdit.Renderer, n *mdit.Node) {
		r.OpenTag(atom.Mark)
		r.RenderChildren(n)
		r.CloseTag(atom.Mark)
	})

	fmt.Print(p.ParseAndRender("==highlighted== text\n"))
	// Output:
	// <p><mark>highlighted</mark> text</p>
}

// calloutPayload and its rule demonstrate a custom block construct: a line
// of the form ":::note some text" becomes <div>some text</div>.
type calloutPayload struct{ Text string }

var calloutKind = mdit.KindOf[*calloutPayload]()

func (*calloutPayload) Kind() mdit.PayloadKind { return calloutKind }

type calloutRule struct{}

func (calloutRule) Run(state *mdit.BlockState, silent bool) bool {
	line := state.LineContent(state.CurrentLine())
	if !strings.HasPrefix(string(line), ":::note ") {
		return false
	}
	if silent {
		return true
	}
	text := strings.TrimPrefix(string(line), ":::note ")
	state.Parent().AppendChild(mdit.NewNode(&calloutPayload{Text: text}))
	state.AdvanceLine()
	return true
}

func ExampleParser_AddBlockRule() {
	p := mdit.New(mdit.WithHTML(true))
	cmark.Register(p)
	p.AddBlockRule("callout", calloutRule{})
	p.Renderer().Register(calloutKind, func(r *mdit.Renderer, n *mdit.Node) {
		callout, _ := mdit.Cast[*calloutPayload](n)
		r.OpenTag(atom.Div)
		r.Text(callout.Text)
		r.CloseTag(atom.Div)
		r.Bytes([]byte("\n"))
	})

	fmt.Print(p.ParseAndRender(":::note remember to vent the boiler\n"))
	// Output:
	// <div>remember to vent the boiler</div>
}

// numberHeadingsRule demonstrates a core rule that runs after the inline
// pass and annotates the tree using only the public Node API.
type numberHeadingsRule struct{}

func (numberHeadingsRule) Run(state *mdit.CoreState) error {
	n := 0
	mdit.Walk(state.Root, &mdit.WalkOptions{
		Pre: func(c *mdit.Cursor) bool {
			if mdit.Is[*cmark.HeadingPayload](c.Node()) {
				n++
				c.Node().SetAttr("data-heading-index", strconv.Itoa(n))
			}
			return true
		},
	})
	return nil
}

func ExampleParser_AddCoreRule() {
	p := mdit.New(mdit.WithHTML(true))
	cmark.Register(p)
	p.AddCoreRule("number_headings", numberHeadingsRule{}).AfterAll()

	fmt.Print(p.ParseAndRender("# First\n\n# Second\n"))
	// Output:
	// <h1 data-heading-index="1">First</h1>
	// <h1 data-heading-index="2">Second</h1>
}
