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

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// A LinkFormatter decides whether a parsed link or image destination is
// safe to render, and normalizes destinations and link text for output
// (spec §4.h). [Parser] uses [DefaultLinkFormatter] unless configured
// otherwise with [Parser.SetLinkFormatter].
type LinkFormatter interface {
	// ValidateLink reports whether url is safe to emit as an href or src
	// attribute. A link rule that gets false from ValidateLink renders
	// the link as plain text instead.
	ValidateLink(url string) bool
	// NormalizeLink encodes url into the machine-readable form that
	// should actually appear in rendered markup.
	NormalizeLink(url string) string
	// NormalizeLinkText decodes url into the human-readable form that
	// should appear as a link's visible text when no link text was given
	// (as in an autolink).
	NormalizeLinkText(url string) string
}

// DefaultLinkFormatter is the [LinkFormatter] every [Parser] uses unless
// configured otherwise. It rejects the handful of URL schemes most
// commonly used for script injection, while erring on the side of
// simplicity: callers with stricter requirements should run rendered
// output through an HTML sanitizer rather than extending this type.
type DefaultLinkFormatter struct{}

var badProtocols = []string{"vbscript:", "javascript:", "file:", "data:"}

var goodDataPrefixes = []string{
	"data:image/gif;",
	"data:image/png;",
	"data:image/jpeg;",
	"data:image/webp;",
}

// ValidateLink implements [LinkFormatter].
func (DefaultLinkFormatter) ValidateLink(url string) bool {
	bad := false
	for _, proto := range badProtocols {
		if len(url) >= len(proto) && strings.EqualFold(url[:len(proto)], proto) {
			bad = true
			break
		}
	}
	if !bad {
		return true
	}
	for _, good := range goodDataPrefixes {
		if len(url) >= len(good) && strings.EqualFold(url[:len(good)], good) {
			return true
		}
	}
	return false
}

// linkSafeChars is the set of ASCII bytes [DefaultLinkFormatter] leaves
// unescaped when normalizing a link destination: letters, digits, and
// the URL-structural punctuation that CommonMark reference
// implementations also leave alone.
var linkSafeChars = NewAsciiSet(";/?:@&=+$,-_.!~*'()#")

// NormalizeLink implements [LinkFormatter].
func (DefaultLinkFormatter) NormalizeLink(url string) string {
	return linkSafeChars.PercentEncode(url)
}

// NormalizeLinkText implements [LinkFormatter]. The default formatter
// returns url unchanged: the destination itself, not a decoded form of
// it, is what CommonMark specifies as an autolink's visible text.
func (DefaultLinkFormatter) NormalizeLinkText(url string) string {
	return url
}

// NormalizeLinkLabel folds a link reference label into the canonical
// form CommonMark uses to match link references against their
// definitions: letter case folded by upper-casing each letter
// (strings.ToUpper) plus NFC normalization, with runs of
// whitespace collapsed to a single space and leading/trailing whitespace
// trimmed. Two labels that normalize to the same string refer to the
// same definition regardless of how their whitespace or letter case was
// written.
func NormalizeLinkLabel(label string) string {
	fields := strings.FieldsFunc(label, unicode.IsSpace)
	folded := strings.ToUpper(strings.Join(fields, " "))
	return norm.NFC.String(folded)
}
