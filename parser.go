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

import "fmt"

// Options configures a [Parser]. The zero Options is not meaningful on
// its own; use [New] with [Option] functions, which start from sensible
// defaults.
type Options struct {
	// HTML permits raw HTML blocks and inline HTML tags to pass through
	// to output unescaped. Rules that implement raw HTML should consult
	// this field and fall back to treating the construct as plain text
	// when it is false.
	HTML bool
	// XHTMLOut self-closes void elements in the form "<br />" rather than
	// "<br>".
	XHTMLOut bool
	// Breaks renders a soft line break as "<br>\n" instead of "\n".
	Breaks bool
	// LangPrefix is prepended to a fenced code block's info string when
	// rendering its "class" attribute. Defaults to "language-".
	LangPrefix string
	// MaxNesting caps block and inline recursion depth (spec-equivalent
	// to markdown-it's maxNesting option). Defaults to 100.
	MaxNesting int
}

// An Option adjusts [Options] when passed to [New].
type Option func(*Options)

// WithHTML sets [Options.HTML].
func WithHTML(enabled bool) Option { return func(o *Options) { o.HTML = enabled } }

// WithXHTMLOut sets [Options.XHTMLOut].
func WithXHTMLOut(enabled bool) Option { return func(o *Options) { o.XHTMLOut = enabled } }

// WithBreaks sets [Options.Breaks].
func WithBreaks(enabled bool) Option { return func(o *Options) { o.Breaks = enabled } }

// WithLangPrefix sets [Options.LangPrefix].
func WithLangPrefix(prefix string) Option {
	return func(o *Options) { o.LangPrefix = prefix }
}

// WithMaxNesting sets [Options.MaxNesting].
func WithMaxNesting(n int) Option { return func(o *Options) { o.MaxNesting = n } }

// A Parser holds a configured set of core, block, and inline rules along
// with a [Renderer] and a [LinkFormatter] (spec §4.i). The zero Parser is
// not ready for use; construct one with [New].
type Parser struct {
	options       Options
	linkFormatter LinkFormatter

	core   *Ruler[CoreRule]
	block  *BlockParser
	inline *InlineParser

	renderer *Renderer
}

// New returns a Parser configured by opts, with no block or inline rules
// registered. Callers almost always want to load a rule bundle (such as
// the one in this module's cmark subpackage) immediately afterward: when
// no registered block rule accepts a line (as happens without a paragraph
// fallback rule), both [Parser.Parse] and [Parser.TryParse] panic.
func New(opts ...Option) *Parser {
	o := Options{
		LangPrefix: "language-",
		MaxNesting: 100,
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Parser{
		options:       o,
		linkFormatter: DefaultLinkFormatter{},
		core:          newCoreChain(),
		block:         newBlockParser(),
		inline:        newInlineParser(),
		renderer:      NewRenderer(),
	}
	p.renderer.XHTMLOut = o.XHTMLOut
	return p
}

// Options returns the parser's configuration.
func (p *Parser) Options() Options { return p.options }

// SetLinkFormatter replaces the parser's [LinkFormatter]. The default is
// [DefaultLinkFormatter].
func (p *Parser) SetLinkFormatter(lf LinkFormatter) { p.linkFormatter = lf }

// LinkFormatter returns the parser's current [LinkFormatter].
func (p *Parser) LinkFormatter() LinkFormatter { return p.linkFormatter }

// Renderer returns the parser's [Renderer], for registering additional
// [RenderFunc] handlers or adjusting [Renderer.FilterTag].
func (p *Parser) Renderer() *Renderer { return p.renderer }

// AddCoreRule registers a [CoreRule] with the parser's core chain (spec
// §4.f) and returns a builder for positioning it relative to the
// built-in normalize/block/inline/text_join rules.
func (p *Parser) AddCoreRule(name string, rule CoreRule) *RuleBuilder[CoreRule] {
	return p.core.Add(name, rule)
}

// AddBlockRule registers a [BlockRule] with the parser's block chain
// (spec §4.c).
func (p *Parser) AddBlockRule(name string, rule BlockRule) *RuleBuilder[BlockRule] {
	return p.block.ruler.Add(name, rule)
}

// AddInlineRule registers a primary [InlineRule] with the parser's
// inline chain (spec §4.d).
func (p *Parser) AddInlineRule(name string, rule InlineRule) *RuleBuilder[InlineRule] {
	return p.inline.primary.Add(name, rule)
}

// AddInlinePostRule registers an [InlinePostRule], run once after the
// primary inline pass completes. The engine's own delimiter-pairing post
// rule is always BeforeAll; marker-specific rules (emphasis,
// strikethrough) order themselves relative to each other with
// Before/After.
func (p *Parser) AddInlinePostRule(name string, rule InlinePostRule) *RuleBuilder[InlinePostRule] {
	return p.inline.post.Add(name, rule)
}

// TokenizeBlock runs the block parser's tokenize loop over state. A
// [BlockRule] implementing a container construct (blockquote, list item)
// calls this after narrowing state's parent, indent, and line bounds, to
// recursively parse the container's contents (spec §4.c).
func (p *Parser) TokenizeBlock(state *BlockState) {
	p.block.Tokenize(state)
}

// TryBlockRules runs the block chain's enabled rules once in silent mode
// at state's current line, reporting whether any would match. A
// paragraph rule uses this to decide whether a line interrupts the
// paragraph it is accumulating, without needing to know the identity of
// any of the rules that might interrupt it.
func (p *Parser) TryBlockRules(state *BlockState) bool {
	return p.block.TryMatch(state)
}

// TokenizeInline runs the inline parser's tokenize loop over state. It is
// called once per [InlineContainerPayload] by the core chain's inline
// pass; rules never call it directly.
func (p *Parser) TokenizeInline(state *InlineState) {
	p.inline.Tokenize(state)
}

// TokenizeInlineRange runs the inline parser's primary rule loop over
// state, bounded by end instead of state's own end of input, without
// flushing pending text or running post rules (see
// [InlineParser.TokenizePrimaryRange]). A link or image rule calls this
// to parse its own label text as a nested sub-run of the same
// [InlineState], after repositioning state with [InlineState.SetPos] and
// [InlineState.PushParent].
func (p *Parser) TokenizeInlineRange(state *InlineState, end int) {
	p.inline.TokenizePrimaryRange(state, end)
}

// Parse parses src and returns the resulting document tree. Unlike
// [Parser.TryParse], Parse never fails on a rule's own reported error: a
// [CoreRule] that returns an error leaves whatever partial tree had been
// built and the remainder of that source unparsed, rather than aborting
// the whole document (spec §4.i). A misconfigured rule chain (a cycle or
// unmet requirement) is a programming error, not a parse-time condition,
// and Parse panics with the [ConfigError] in that case.
func (p *Parser) Parse(src string) *Node {
	root, err := p.parse(src)
	if _, isConfig := err.(*ConfigError); isConfig {
		panic(err)
	}
	return root
}

// TryParse parses src like [Parser.Parse], but returns the first error
// reported by a [CoreRule] (wrapped in a [RuleError]) or by compiling a
// rule chain (wrapped in a [ConfigError]) instead of swallowing it.
func (p *Parser) TryParse(src string) (*Node, error) {
	return p.parse(src)
}

func (p *Parser) parse(src string) (*Node, error) {
	root := NewNode(&DocumentPayload{})
	rules, err := p.core.Rules()
	if err != nil {
		return root, &ConfigError{Chain: "core", Err: err}
	}
	if _, err := p.block.ruler.Rules(); err != nil {
		return root, &ConfigError{Chain: "block", Err: err}
	}
	if _, err := p.inline.primary.Rules(); err != nil {
		return root, &ConfigError{Chain: "inline", Err: err}
	}
	if _, err := p.inline.post.Rules(); err != nil {
		return root, &ConfigError{Chain: "inline", Err: err}
	}

	state := &CoreState{
		Root:   root,
		Src:    []byte(src),
		Env:    NewEnv(),
		parser: p,
	}
	for _, r := range rules {
		if err := r.Run(state); err != nil {
			return state.Root, &RuleError{Rule: fmt.Sprintf("%T", r), Err: err}
		}
	}
	return state.Root, nil
}

// Render renders root to an HTML string using the parser's [Renderer].
func (p *Parser) Render(root *Node) string {
	return p.renderer.Render(root)
}

// ParseAndRender is a convenience wrapper equivalent to
// p.Render(p.Parse(src)).
func (p *Parser) ParseAndRender(src string) string {
	return p.Render(p.Parse(src))
}
