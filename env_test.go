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

func TestEnvGetSet(t *testing.T) {
	e := NewEnv()
	if _, ok := Get[int](e, ScopeBlock); ok {
		t.Fatal("Get on empty Env reported ok=true")
	}
	Set(e, ScopeBlock, 42)
	v, ok := Get[int](e, ScopeBlock)
	if !ok || v != 42 {
		t.Errorf("Get = (%d, %v); want (42, true)", v, ok)
	}
}

func TestEnvGetOrInsert(t *testing.T) {
	e := NewEnv()
	p := GetOrInsert[[]string](e, ScopeInlineLevel)
	*p = append(*p, "a")

	p2 := GetOrInsert[[]string](e, ScopeInlineLevel)
	if len(*p2) != 1 || (*p2)[0] != "a" {
		t.Errorf("GetOrInsert returned a fresh value on second call: %v", *p2)
	}
}

func TestEnvScopesAreIndependent(t *testing.T) {
	e := NewEnv()
	Set(e, ScopeBlock, "block value")
	if _, ok := Get[string](e, ScopeInline); ok {
		t.Error("value set on ScopeBlock leaked into ScopeInline")
	}
}

func TestEnvStatePushPop(t *testing.T) {
	e := NewEnv()
	Set(e, ScopeInlineLevel, "outer")

	e.StatePush(ScopeInlineLevel)
	if _, ok := Get[string](e, ScopeInlineLevel); ok {
		t.Error("StatePush should hide state from the enclosing frame")
	}
	Set(e, ScopeInlineLevel, "inner")
	v, _ := Get[string](e, ScopeInlineLevel)
	if v != "inner" {
		t.Errorf("inner frame Get = %q; want \"inner\"", v)
	}
	e.StatePop(ScopeInlineLevel)

	v, ok := Get[string](e, ScopeInlineLevel)
	if !ok || v != "outer" {
		t.Errorf("after StatePop, Get = (%q, %v); want (\"outer\", true)", v, ok)
	}
}

func TestEnvStatePopPanicsOnLastFrame(t *testing.T) {
	e := NewEnv()
	defer func() {
		if recover() == nil {
			t.Error("StatePop on the last frame did not panic")
		}
	}()
	e.StatePop(ScopeBlock)
}
