// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vault treats a directory of markdown notes as the document store
// behind notefind.
//
// A Vault collects one core.Document per *.md file, titled by the file name
// and aliased by the "aliases" or "alias" front matter key. Wiki links that
// point at notes which do not exist yet become placeholder documents, so a
// link can be completed before its target is written.
//
// Headings and blocks are read on demand through goldmark. Blocks are the
// paragraphs of a note; a block may end with a " ^id" marker, and
// AppendBlockID writes such a marker when a link to an unnamed block is
// created.
//
// File parsing runs on an ants worker pool; call Release when done.
// Watcher reports note changes so callers can rebuild their index.
package vault
