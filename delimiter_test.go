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

func TestPairDelimitersSimpleMatch(t *testing.T) {
	runs := []*DelimRun{
		NewDelimRun('*', 1, 0, true, false),
		NewDelimRun('*', 1, 1, false, true),
	}
	PairDelimiters(runs)

	if runs[0].End != 1 {
		t.Errorf("opener.End = %d; want 1", runs[0].End)
	}
	if runs[0].CanClose {
		t.Error("matched opener should have CanClose cleared")
	}
	if runs[1].CanOpen {
		t.Error("matched closer should have CanOpen cleared")
	}
}

func TestPairDelimitersRuleOfThreeBlocksMismatch(t *testing.T) {
	runs := []*DelimRun{
		NewDelimRun('*', 2, 0, true, true),
		NewDelimRun('*', 1, 1, true, true),
	}
	PairDelimiters(runs)
	if runs[0].End != -1 {
		t.Error("rule of 3 should have disqualified this opener/closer pair")
	}
}

func TestPairDelimitersRuleOfThreeAllowsMultiplesOfThree(t *testing.T) {
	runs := []*DelimRun{
		NewDelimRun('*', 3, 0, true, true),
		NewDelimRun('*', 3, 1, true, true),
	}
	PairDelimiters(runs)
	if runs[0].End != 1 {
		t.Error("two length-3 runs (both multiples of 3) should be allowed to pair")
	}
}

func TestPairDelimitersDoesNotCrossATokenGap(t *testing.T) {
	// A non-matching run sits between the opener and closer at a
	// non-contiguous TokenIndex, simulating literal text interrupting the
	// delimiter sequence. The closer must not reach back past that gap to
	// pair with the earlier opener.
	runs := []*DelimRun{
		NewDelimRun('*', 1, 0, true, false),
		NewDelimRun('_', 1, 10, false, false),
		NewDelimRun('*', 1, 11, false, true),
	}
	PairDelimiters(runs)
	if runs[0].End != -1 {
		t.Error("closer should not pair across a token-index gap")
	}
}

func TestPairDelimitersUnmatchedCloserStaysOpenForOpen(t *testing.T) {
	runs := []*DelimRun{
		NewDelimRun('*', 1, 0, false, true),
	}
	PairDelimiters(runs)
	if runs[0].End != -1 {
		t.Error("a lone closer has nothing to match")
	}
}

// Partner is not set by PairDelimiters itself -- it's a convenience a
// caller sets after the fact once it knows what slice End indexes into.
// This mirrors how inlineparser.go's pairDelimitersRule uses it.
func TestPartnerIsCallerManaged(t *testing.T) {
	opener := NewDelimRun('*', 1, 0, true, false)
	closer := NewDelimRun('*', 1, 1, false, true)
	runs := []*DelimRun{opener, closer}
	PairDelimiters(runs)

	if opener.Partner != nil || closer.Partner != nil {
		t.Fatal("PairDelimiters must not set Partner on its own")
	}
	if opener.End != 1 {
		t.Fatalf("opener.End = %d; want 1", opener.End)
	}
	opener.Partner = runs[opener.End]
	closer.Partner = opener
	if opener.Partner != closer || closer.Partner != opener {
		t.Error("Partner should link both ends of the match to each other")
	}
}
