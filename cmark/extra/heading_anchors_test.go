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

package extra_test

import (
	"strings"
	"testing"

	"github.com/nextmd/mdit"
	"github.com/nextmd/mdit/cmark"
	"github.com/nextmd/mdit/cmark/extra"
)

func TestRegisterHeadingAnchors(t *testing.T) {
	p := mdit.New()
	cmark.Register(p)
	extra.RegisterHeadingAnchors(p)

	got := p.ParseAndRender("# Hello World\n\n# Hello World\n")

	if !strings.Contains(got, `id="hello-world"`) {
		t.Errorf("ParseAndRender = %q; want an id=\"hello-world\" heading", got)
	}
	if !strings.Contains(got, `id="hello-world-2"`) {
		t.Errorf("ParseAndRender = %q; want a disambiguated id=\"hello-world-2\" heading", got)
	}
}
