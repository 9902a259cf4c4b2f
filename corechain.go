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

import "strings"

// A CoreRule is one stage of the top-level parse pipeline (spec §4.f): a
// function of the whole document [CoreState], run in the core [Ruler]'s
// resolved order. The four rules every [Parser] registers by default --
// normalize, block, inline, and text_join -- are themselves ordinary
// CoreRule implementations with no special status beyond being added
// first; a rule added between "block" and "inline" sees a tree of
// unexpanded [InlineContainerPayload] placeholders, and a rule added after
// "inline" sees a fully expanded tree.
type CoreRule interface {
	// Run processes state, returning an error only for conditions a
	// caller of [Parser.TryParse] should be able to observe and react to.
	// Most rules never fail and always return nil.
	Run(state *CoreState) error
}

// CoreState is the object passed through the core chain: the document
// root, its normalized source, and the shared [Env] for the whole parse.
type CoreState struct {
	Root *Node
	Src  []byte
	Env  *Env

	parser *Parser
}

func newCoreChain() *Ruler[CoreRule] {
	r := NewRuler[CoreRule]()
	r.Add("normalize", normalizeRule{}).BeforeAll()
	r.Add("block", blockCoreRule{})
	r.Add("inline", inlineCoreRule{}).After(ID[blockCoreRule]())
	r.Add("text_join", textJoinRule{}).AfterAll()
	return r
}

// normalizeRule converts CRLF and lone CR line endings to LF and replaces
// NUL bytes with U+FFFD, per CommonMark's preprocessing step.
type normalizeRule struct{}

func (normalizeRule) Run(state *CoreState) error {
	src := state.Src
	if !strings.ContainsAny(string(src), "\r\x00") {
		return nil
	}
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			b.WriteByte('\n')
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
		case 0:
			b.WriteRune('�')
		default:
			b.WriteByte(src[i])
		}
	}
	state.Src = []byte(b.String())
	return nil
}

// blockCoreRule runs the block parser over the whole document.
type blockCoreRule struct{}

func (blockCoreRule) Run(state *CoreState) error {
	bs := newBlockState(state.parser, state.Src, state.Root, state.Env)
	state.parser.block.Tokenize(bs)
	return nil
}

// inlineCoreRule replaces every InlineContainerPayload node's children
// with the result of tokenizing its source.
type inlineCoreRule struct{}

func (inlineCoreRule) Run(state *CoreState) error {
	var containers []*Node
	Walk(state.Root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if c.Node().Kind() == InlineContainerKind() {
				containers = append(containers, c.Node())
			}
			return true
		},
	})
	for _, n := range containers {
		container, _ := Cast[*InlineContainerPayload](n)
		state.Env.StatePush(ScopeInlineLevel)
		is := newInlineState(state.parser, container, n, state.Env)
		state.parser.inline.Tokenize(is)
		state.Env.StatePop(ScopeInlineLevel)
	}
	return nil
}

// textJoinRule merges adjacent TextPayload siblings left over once
// delimiter pairing and marker-specific post rules have rewritten
// unmatched delimiter tokens back into literal text (spec §4.e, §4.f).
type textJoinRule struct{}

func (textJoinRule) Run(state *CoreState) error {
	WalkPostMut(state.Root, joinAdjacentText)
	return nil
}

func joinAdjacentText(n *Node) {
	children := n.Children()
	if len(children) < 2 {
		return
	}
	out := children[:0:0]
	for _, c := range children {
		if text, ok := Cast[*TextPayload](c); ok && len(out) > 0 {
			if prevText, ok := Cast[*TextPayload](out[len(out)-1]); ok {
				prevText.Content += text.Content
				continue
			}
		}
		out = append(out, c)
	}
	n.SetChildren(out)
}
