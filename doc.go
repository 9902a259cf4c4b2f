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

// Package mdit provides an extensible [CommonMark] parsing and rendering
// engine. Every syntactic feature, including the base CommonMark grammar
// itself, is implemented as a plugin registered against a [Parser]: the
// engine owns only the rule-dispatch machinery (the [Ruler] chains), the
// [Node] tree, the block and inline tokenizers, delimiter-pair resolution,
// and the [Renderer]. See the cmark subpackage for the default CommonMark
// rule bundle.
//
// [CommonMark]: https://commonmark.org/
package mdit
