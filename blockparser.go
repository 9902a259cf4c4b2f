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

// A BlockRule recognizes one block-level construct starting at
// state.CurrentLine(). When silent is true, the rule must not mutate
// state or the tree; it only reports whether the construct would match
// (used by a paragraph rule's interrupt check through
// [Parser.TryBlockRules]). When silent is false and the rule matches, it
// may append nodes to state.Parent() (a rule such as a reference
// definition appends none) and must advance state.CurrentLine() past the
// lines it consumed.
type BlockRule interface {
	Run(state *BlockState, silent bool) bool
}

// BlockParser runs a [Ruler][BlockRule]'s resolved chain over a
// [BlockState] (spec §4.c). A container rule such as blockquote or a list
// item recurses back into [Parser.TokenizeBlock] after narrowing the
// state's BlkIndent, LineMax, and Parent, so the whole document is walked
// by repeated invocations of the same loop rather than by a separate
// container-vs-leaf distinction in the engine itself.
type BlockParser struct {
	ruler *Ruler[BlockRule]
}

func newBlockParser() *BlockParser {
	return &BlockParser{ruler: NewRuler[BlockRule]()}
}

// Ruler returns the parser's rule chain, for registering or reordering
// block rules.
func (bp *BlockParser) Ruler() *Ruler[BlockRule] { return bp.ruler }

// Tokenize runs the block-level loop described in spec §4.c over state
// until state reaches its LineMax, its BlkIndent is no longer met, or its
// Nesting reaches MaxNesting. It is exported on [Parser] as
// [Parser.TokenizeBlock] so that container rules can call back into it.
func (bp *BlockParser) Tokenize(state *BlockState) {
	rules := bp.ruler.MustRules()
	for {
		state.skipBlankLines()
		if state.line >= state.lineMax {
			return
		}
		if state.SCount(state.line) < state.blkIndent {
			return
		}
		if state.nesting >= state.maxNesting {
			state.line = state.lineMax
			return
		}

		startLine := state.line
		matched := false
		for _, r := range rules {
			if r.Run(state, false) {
				matched = true
				break
			}
		}
		if !matched {
			panic(panicNoBlockRuleMatched)
		}
		if state.line <= startLine {
			panicRuleDidNotAdvance("block")
		}

		state.tight = !state.precededByBlank
		state.precededByBlank = false

		if state.line < state.lineMax && state.IsBlank(state.line) {
			state.line++
			state.precededByBlank = true
		}
	}
}

// TryMatch runs every enabled block rule in silent mode at state's
// current line, reporting whether any one of them would match.
// [Parser.TryBlockRules] exposes it so a paragraph rule can test whether
// a line interrupts the paragraph without committing to a parse.
func (bp *BlockParser) TryMatch(state *BlockState) bool {
	for _, r := range bp.ruler.MustRules() {
		if r.Run(state, true) {
			return true
		}
	}
	return false
}
