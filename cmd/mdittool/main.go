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

// Command mdittool renders a Markdown document to HTML, or dumps its
// parsed tree for debugging. It is a thin smoke-test wrapper around the
// mdit module, not a feature of the engine itself, so it sticks to the
// standard library's flag package rather than drawing in a CLI
// framework.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nextmd/mdit"
	"github.com/nextmd/mdit/cmark"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "mdittool:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("mdittool", flag.ContinueOnError)
	output := fs.String("o", "", "write output to `file` instead of stdout")
	sourcepos := fs.Bool("sourcepos", false, "annotate output elements with data-sourcepos attributes")
	noHTML := fs.Bool("no-html", false, "disable raw HTML passthrough")
	tree := fs.Bool("tree", false, "dump the parsed tree instead of rendering HTML")
	verbose := fs.Bool("v", false, "log the input size and HTML setting to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var src []byte
	var err error
	if rest := fs.Args(); len(rest) > 0 {
		src, err = os.ReadFile(rest[0])
	} else {
		src, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	p := mdit.New(mdit.WithHTML(!*noHTML))
	cmark.Register(p)
	if *sourcepos {
		p.AddCoreRule("sourcepos_attrs", sourceposRule{}).AfterAll()
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "mdittool: %d bytes of input, html=%v\n", len(src), !*noHTML)
	}

	root, err := p.TryParse(string(src))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	var out []byte
	if *tree {
		out = []byte(dumpTree(root))
	} else {
		out = []byte(p.Render(root))
	}

	if *output == "" {
		_, err = stdout.Write(out)
		return err
	}
	return os.WriteFile(*output, out, 0o644)
}

// sourceposRule annotates every node carrying an [mdit.SrcMap] with a
// "data-sourcepos" attribute, in the "startLine:startCol-endLine:endCol"
// form commonmark.js's sourcepos extension uses. It runs after every
// other core rule so it sees the fully expanded inline tree.
type sourceposRule struct{}

func (sourceposRule) Run(state *mdit.CoreState) error {
	mdit.Walk(state.Root, &mdit.WalkOptions{
		Pre: func(c *mdit.Cursor) bool {
			n := c.Node()
			if sm := n.SrcMap(); sm != nil {
				n.SetAttr("data-sourcepos", formatSourcepos(*sm))
			}
			return true
		},
	})
	return nil
}

func formatSourcepos(sm mdit.SrcMap) string {
	return strconv.Itoa(sm.StartLine+1) + ":1-" + strconv.Itoa(sm.EndLine) + ":1"
}

func dumpTree(root *mdit.Node) string {
	var b []byte
	var walk func(n *mdit.Node, depth int)
	walk = func(n *mdit.Node, depth int) {
		for i := 0; i < depth; i++ {
			b = append(b, "  "...)
		}
		b = append(b, fmt.Sprintf("%T\n", n.Payload())...)
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return string(b)
}
