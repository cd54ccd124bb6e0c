package analysis

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// SetClusteringValue returns data with clustering.<name> set to value. The
// rest of the document, comments included, is kept.
func SetClusteringValue(data []byte, name, value string) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrInvalidAnalysis)
	}

	section := lookup(root, "clustering")
	if section == nil {
		section = &yaml.Node{Kind: yaml.MappingNode}
		root.Content = append(root.Content, scalar("clustering"), section)
	}
	if section.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: clustering is not a mapping", ErrInvalidAnalysis)
	}

	if v := lookup(section, name); v != nil {
		*v = *scalar(value)
	} else {
		section.Content = append(section.Content, scalar(name), scalar(value))
	}
	return yaml.Marshal(&doc)
}

// SaveClusteringValue applies SetClusteringValue to the file at path,
// creating it when missing.
func SaveClusteringValue(path, name, value string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read analysis: %w", err)
	}
	out, err := SetClusteringValue(data, name, value)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}
	return nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}
