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

import "reflect"

// RuleID identifies a rule or a [Payload] kind by the Go type that
// implements it, not by its display name. Two plugins can register rules
// or payloads that happen to share a name without colliding, because
// [ID] keys on type identity.
type RuleID = reflect.Type

// ID returns the stable identity for T. Two calls to ID[T]() for the same
// T always return an equal RuleID; calls for distinct types never do.
//
//	ruler.Add("heading", HeadingRule{}).
//		Before(mdit.ID[ParagraphRule]())
func ID[T any]() RuleID {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// idOf returns the RuleID for the dynamic type of rule.
func idOf(rule any) RuleID {
	return reflect.TypeOf(rule)
}
