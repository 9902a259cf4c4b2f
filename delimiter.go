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

// DelimRun is one run of a potential emphasis-like delimiter character
// (spec §3, §4.e): a marker, its run length, the position in the inline
// state's token sequence of the text node that currently holds the literal
// marker characters, and the CanOpen/CanClose flanking flags CommonMark's
// left/right-flanking rules assign it. After [PairDelimiters] runs, a
// matched opener's End points at its closer's index in the same slice,
// and its Close flag (along with the matched closer's Open flag) is
// cleared.
type DelimRun struct {
	Marker rune
	Length int

	// TokenIndex is the position of this run's backing text node in the
	// inline state's token sequence (the value [InlineState.AppendChild]
	// returns), not a child index. PairDelimiters treats runs whose
	// TokenIndex values are consecutive as one contiguous run.
	TokenIndex int

	CanOpen  bool
	CanClose bool

	// End is the index, within the same DelimRun slice, of this run's
	// matched closer, or -1 if unmatched or this run is itself a closer.
	End int

	// Partner is the matched run itself, set by a caller that groups runs
	// from more than one slice (the engine's delimiter-pairing post rule
	// sets it on both ends of every pair it makes) so that a consumer
	// holding only a *DelimRun, with no idea which slice End indexes
	// into, can still find its counterpart.
	Partner *DelimRun

	jump int
}

// NewDelimRun returns a DelimRun with End initialized to -1 (unmatched).
func NewDelimRun(marker rune, length, tokenIndex int, canOpen, canClose bool) *DelimRun {
	return &DelimRun{
		Marker:     marker,
		Length:     length,
		TokenIndex: tokenIndex,
		CanOpen:    canOpen,
		CanClose:   canClose,
		End:        -1,
	}
}

// openerClass encodes a closer's "rule of 3" bucket: 3 times whether the
// closer can also open, plus its length mod 3 (spec §4.e step 3).
func openerClass(closer *DelimRun) int {
	class := closer.Length % 3
	if closer.CanOpen {
		class += 3
	}
	return class
}

// oddMatch reports whether pairing opener with closer is disqualified by
// CommonMark's "rule of 3": if either delimiter run can play both roles,
// a combined length that is a multiple of 3 is only allowed when both
// individual lengths are themselves multiples of 3.
func oddMatch(opener, closer *DelimRun) bool {
	if !(opener.CanClose || closer.CanOpen) {
		return false
	}
	if (opener.Length+closer.Length)%3 != 0 {
		return false
	}
	return opener.Length%3 != 0 || closer.Length%3 != 0
}

// PairDelimiters resolves a slice of same-pass [DelimRun] values produced
// for a single marker family (callers partition runs.Delimiters by
// Marker before calling, or pass the whole slice if their marker
// comparison is folded into the matching already) using the two-phase
// algorithm of spec §4.e: a linear scan that maintains, per closer class,
// the lowest opener index still worth examining, so that the overall cost
// is O(n) in the number of delimiter runs rather than O(n^2).
func PairDelimiters(runs []*DelimRun) {
	if len(runs) == 0 {
		return
	}
	// openersBottom[marker][class] is the lowest index in runs that may
	// still be a candidate opener for a closer of that marker and class.
	openersBottom := make(map[rune][7]int)

	headerIdx := 0
	lastTokenIdx := -2
	for i, d := range runs {
		isOddJump := d.TokenIndex != lastTokenIdx+1
		if isOddJump {
			headerIdx = i
		}
		lastTokenIdx = d.TokenIndex

		if !d.CanClose {
			continue
		}

		class := openerClass(d)
		bottoms := openersBottom[d.Marker]
		minOpener := bottoms[class]
		if minOpener < headerIdx {
			minOpener = headerIdx
		}

		j := i - 1 - d.jump
		matched := false
		for j >= minOpener {
			opener := runs[j]
			if opener.Marker == d.Marker && opener.CanOpen && opener.End == -1 && !oddMatch(opener, d) {
				matched = true
				break
			}
			j -= 1 + opener.jump
		}

		if matched {
			opener := runs[j]
			d.jump = i - j
			opener.End = i
			opener.CanClose = false
			d.CanOpen = false
			headerIdx = i + 1
		} else {
			bottoms[class] = i
			openersBottom[d.Marker] = bottoms
		}
	}
}
