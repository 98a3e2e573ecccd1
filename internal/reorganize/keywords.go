// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorganize

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// KeywordCategory maps a target folder to the filename keywords that select it.
type KeywordCategory struct {
	Folder   string
	Keywords []string
}

func (c KeywordCategory) matches(lowerName string) bool {
	for _, k := range c.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" && strings.Contains(lowerName, k) {
			return true
		}
	}
	return false
}

// KeywordMap is an ordered list of categories. Order matters: a document
// goes to the first category that matches.
type KeywordMap []KeywordCategory

// LoadKeywordMap reads a folder-to-keywords mapping from a YAML or JSON
// file, keeping the file's key order:
//
//	Quantum_Mechanics: [quantum, entanglement]
//	Optics: [optical, laser, photon]
func LoadKeywordMap(path string) (KeywordMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword map: %w", err)
	}
	return ParseKeywordMap(data)
}

// ParseKeywordMap decodes a keyword mapping document.
func ParseKeywordMap(data []byte) (KeywordMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing keyword map: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("keyword map is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("keyword map must be a mapping of folder to keywords")
	}

	var km KeywordMap
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var keywords []string
		if err := value.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("keywords for %q (line %d): %w", key.Value, value.Line, err)
		}
		km = append(km, KeywordCategory{Folder: key.Value, Keywords: keywords})
	}
	return km, nil
}
