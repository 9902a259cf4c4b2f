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

package cmark_test

import (
	"testing"

	"github.com/nextmd/mdit"
	"github.com/nextmd/mdit/cmark"
	"github.com/nextmd/mdit/internal/normhtml"
)

func render(t *testing.T, opts []mdit.Option, src string) string {
	t.Helper()
	p := mdit.New(opts...)
	cmark.Register(p)
	root, err := p.TryParse(src)
	if err != nil {
		t.Fatalf("TryParse(%q): %v", src, err)
	}
	return p.Render(root)
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"paragraph", "hello world\n", "<p>hello world</p>\n"},
		{
			"wrapped paragraph",
			"hello\nworld\n",
			"<p>hello\nworld</p>\n",
		},
		{"atx heading", "## Title\n", "<h2>Title</h2>\n"},
		{"setext heading", "Title\n=====\n", "<h1>Title</h1>\n"},
		{"thematic break", "---\n", "<hr>\n"},
		{"blockquote", "> quoted\n", "<blockquote>\n<p>quoted</p>\n</blockquote>\n"},
		{
			"tight list",
			"- a\n- b\n",
			"<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n",
		},
		{
			"loose list",
			"- a\n\n- b\n",
			"<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>\n",
		},
		{
			"ordered list with start",
			"3. a\n4. b\n",
			`<ol start="3">` + "\n<li>a</li>\n<li>b</li>\n</ol>\n",
		},
		{
			"indented code block",
			"    code here\n",
			"<pre><code>code here\n</code></pre>\n",
		},
		{
			"fenced code block with info",
			"```go\nfmt.Println(1)\n```\n",
			`<pre><code class="language-go">fmt.Println(1)` + "\n</code></pre>\n",
		},
		{
			"reference definition resolves later link",
			"[a link][ref]\n\n[ref]: /url \"a title\"\n",
			`<p><a href="/url" title="a title">a link</a></p>` + "\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := render(t, []mdit.Option{mdit.WithHTML(true)}, test.src)
			if string(normhtml.NormalizeHTML([]byte(got))) != string(normhtml.NormalizeHTML([]byte(test.want))) {
				t.Errorf("render(%q) = %q; want %q", test.src, got, test.want)
			}
		})
	}
}

func TestInlines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"emphasis", "*em*\n", "<p><em>em</em></p>\n"},
		{"strong", "**strong**\n", "<p><strong>strong</strong></p>\n"},
		{"nested strong in em", "*a **b** c*\n", "<p><em>a <strong>b</strong> c</em></p>\n"},
		{"code span", "`code`\n", "<p><code>code</code></p>\n"},
		{"code span strips one space", "` a `\n", "<p><code>a</code></p>\n"},
		{"escape", "\\*not em\\*\n", "<p>*not em*</p>\n"},
		{"entity", "&amp;\n", "<p>&amp;</p>\n"},
		{"hex entity", "&#x41;\n", "<p>A</p>\n"},
		{"hard break", "line1  \nline2\n", "<p>line1<br>\nline2</p>\n"},
		{"soft break", "line1\nline2\n", "<p>line1\nline2</p>\n"},
		{
			"inline link",
			"[text](/url \"title\")\n",
			`<p><a href="/url" title="title">text</a></p>` + "\n",
		},
		{
			"inline image",
			"![alt](/img.png)\n",
			`<p><img src="/img.png" alt="alt"></p>` + "\n",
		},
		{
			"autolink uri",
			"<http://example.com>\n",
			`<p><a href="http://example.com">http://example.com</a></p>` + "\n",
		},
		{
			"autolink email",
			"<foo@example.com>\n",
			`<p><a href="mailto:foo@example.com">foo@example.com</a></p>` + "\n",
		},
		{
			"rejected javascript link falls back to literal text",
			"[x](javascript:alert(1))\n",
			"<p>[x](javascript:alert(1))</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := render(t, []mdit.Option{mdit.WithHTML(true)}, test.src)
			if string(normhtml.NormalizeHTML([]byte(got))) != string(normhtml.NormalizeHTML([]byte(test.want))) {
				t.Errorf("render(%q) = %q; want %q", test.src, got, test.want)
			}
		})
	}
}

func TestHTMLOptionDisabled(t *testing.T) {
	got := render(t, []mdit.Option{mdit.WithHTML(false)}, "<em>raw</em> text\n")
	want := "<p>&lt;em&gt;raw&lt;/em&gt; text</p>\n"
	if string(normhtml.NormalizeHTML([]byte(got))) != string(normhtml.NormalizeHTML([]byte(want))) {
		t.Errorf("render with HTML disabled = %q; want %q", got, want)
	}
}

func TestBreaksOption(t *testing.T) {
	got := render(t, []mdit.Option{mdit.WithBreaks(true)}, "line1\nline2\n")
	want := "<p>line1<br>\nline2</p>\n"
	if string(normhtml.NormalizeHTML([]byte(got))) != string(normhtml.NormalizeHTML([]byte(want))) {
		t.Errorf("render with Breaks = %q; want %q", got, want)
	}
}
