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


package core

import "sort"

// Reachable computes the set of entity IDs reachable from start within
// maxDepth hops over the given relations, following only edges whose Type
// matches relationType. An empty relationType follows edges of every type.
//
// Semantics:
//   - maxDepth == 0 returns just the start ID if exists reports it present,
//     or an empty result otherwise.
//   - maxDepth >= 1 returns IDs reached via 1..maxDepth hops. The start ID
//     appears in the result only when an edge path leads back to it.
//   - A negative maxDepth returns an empty result.
//
// The result is sorted for deterministic output.
func Reachable(relations []Relation, exists func(id string) bool, start, relationType string, maxDepth int) []string {
	if maxDepth < 0 {
		return nil
	}
	if maxDepth == 0 {
		if exists(start) {
			return []string{start}
		}
		return nil
	}
	if !exists(start) {
		return nil
	}

	adjacency := make(map[string][]string)
	for _, rel := range relations {
		if relationType != "" && rel.Type != relationType {
			continue
		}
		adjacency[rel.Source] = append(adjacency[rel.Source], rel.Target)
	}

	reached := make(map[string]bool)
	frontier := []string{start}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, target := range adjacency[id] {
				if reached[target] {
					continue
				}
				reached[target] = true
				next = append(next, target)
			}
		}
		frontier = next
	}

	result := make([]string, 0, len(reached))
	for id := range reached {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}
