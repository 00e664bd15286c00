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

package vault

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontMatterRe = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)

// splitFrontMatter separates a leading YAML front matter block from the body.
// It also returns the number of lines the front matter occupied so body line
// numbers can be mapped back to file lines.
func splitFrontMatter(data []byte) (fm []byte, body []byte, lineOffset int) {
	loc := frontMatterRe.FindSubmatchIndex(data)
	if loc == nil {
		return nil, data, 0
	}
	fm = data[loc[2]:loc[3]]
	body = data[loc[1]:]
	lineOffset = bytes.Count(data[:loc[1]], []byte("\n"))
	return fm, body, lineOffset
}

// parseAliases reads the "aliases" and "alias" keys of a front matter block.
// Each may hold a scalar or a sequence. Blank entries are dropped.
func parseAliases(fm []byte) ([]string, error) {
	if len(fm) == 0 {
		return nil, nil
	}

	var data yaml.Node
	if err := yaml.Unmarshal(fm, &data); err != nil {
		return nil, err
	}
	if data.Kind != yaml.DocumentNode || len(data.Content) == 0 {
		return nil, nil
	}

	mapping := data.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, nil
	}

	var aliases []string
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		if key != "aliases" && key != "alias" {
			continue
		}
		for _, value := range flattenYAMLValue(mapping.Content[i+1]) {
			if value = strings.TrimSpace(value); value != "" {
				aliases = append(aliases, value)
			}
		}
	}
	return aliases, nil
}

func flattenYAMLValue(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.SequenceNode:
		vals := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind == yaml.ScalarNode {
				vals = append(vals, child.Value)
			}
		}
		return vals
	case yaml.ScalarNode:
		return []string{node.Value}
	default:
		return nil
	}
}
