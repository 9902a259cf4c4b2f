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
	"testing"

	"github.com/google/go-cmp/cmp"
)

type ruleA struct{ log *[]string }
type ruleB struct{ log *[]string }
type ruleC struct{ log *[]string }

func (r ruleA) Run(*CoreState) error { *r.log = append(*r.log, "a"); return nil }
func (r ruleB) Run(*CoreState) error { *r.log = append(*r.log, "b"); return nil }
func (r ruleC) Run(*CoreState) error { *r.log = append(*r.log, "c"); return nil }

func TestRulerResolvesBeforeAfter(t *testing.T) {
	ruler := NewRuler[CoreRule]()
	var log []string
	ruler.Add("b", ruleB{&log})
	ruler.Add("a", ruleA{&log}).Before(ID[ruleB]())
	ruler.Add("c", ruleC{&log}).After(ID[ruleB]())

	rules, err := ruler.Rules()
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	for _, rule := range rules {
		if err := rule.Run(nil); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestRulerBeforeAllAfterAll(t *testing.T) {
	ruler := NewRuler[CoreRule]()
	var log []string
	ruler.Add("b", ruleB{&log})
	ruler.Add("c", ruleC{&log}).AfterAll()
	ruler.Add("a", ruleA{&log}).BeforeAll()

	rules, err := ruler.Rules()
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	for _, rule := range rules {
		rule.Run(nil)
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestRulerCycleError(t *testing.T) {
	ruler := NewRuler[CoreRule]()
	var log []string
	ruler.Add("a", ruleA{&log}).Before(ID[ruleB]())
	ruler.Add("b", ruleB{&log}).Before(ID[ruleA]())

	_, err := ruler.Rules()
	if err == nil {
		t.Fatal("Rules: want error, got nil")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Errorf("Rules error = %T; want *CycleError", err)
	}
}

func TestRulerMissingRequirement(t *testing.T) {
	ruler := NewRuler[CoreRule]()
	var log []string
	ruler.Add("a", ruleA{&log}).Require(ID[ruleB]())

	_, err := ruler.Rules()
	if err == nil {
		t.Fatal("Rules: want error, got nil")
	}
	if _, ok := err.(*MissingRequirementError); !ok {
		t.Errorf("Rules error = %T; want *MissingRequirementError", err)
	}
}

func TestRulerAliasSatisfiesRequirement(t *testing.T) {
	ruler := NewRuler[CoreRule]()
	var log []string
	ruler.Add("a", ruleA{&log}).Require(ID[ruleB]())
	ruler.Add("c", ruleC{&log}).Alias(ID[ruleB]())

	if _, err := ruler.Rules(); err != nil {
		t.Errorf("Rules: %v", err)
	}
}

func TestRulerEnableDisable(t *testing.T) {
	ruler := NewRuler[CoreRule]()
	var log []string
	ruler.Add("a", ruleA{&log})
	ruler.Enable(ID[ruleA](), false)

	rules, err := ruler.Rules()
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("Rules() = %d rules; want 0", len(rules))
	}
}
