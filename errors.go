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

// CycleError is returned by [Ruler.Rules] when the before/after/require
// constraints on the ruler's rules form a cycle.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("rule ordering cycle: %v", e.Chain)
}

// MissingRequirementError is returned by [Ruler.Rules] when a rule's
// Require constraint names a rule id that is not present and enabled.
type MissingRequirementError struct {
	Rule     string
	Required string
}

func (e *MissingRequirementError) Error() string {
	return fmt.Sprintf("rule %q requires rule %q, which is not enabled", e.Rule, e.Required)
}

// RuleError wraps an error returned by a fallible rule
// (a [CoreRule] invoked through [Parser.TryParse])
// with the identity of the rule that produced it.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// ConfigError indicates an error discovered while compiling a [Ruler]'s
// rule chain, such as a cycle or an unmet requirement. It is raised
// eagerly from the first call to [Parser.Parse] or [Parser.TryParse]
// after the ruler was mutated.
type ConfigError struct {
	Chain string // "core", "block", or "inline"
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mdit: configuring %s rule chain: %s", e.Chain, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// invariant violations are programmer errors and panic with one of these
// message strings rather than being returned as errors. See spec §7.

const (
	panicNoBlockRuleMatched = "mdit: no block rule matched (is the paragraph fallback rule registered?)"
)

func panicRuleDidNotAdvance(name string) {
	panic(fmt.Sprintf("mdit: rule %q accepted without advancing the cursor", name))
}
