package update

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// rewriteRevs returns data with the rev value of each repo named in updates
// replaced. The document is edited through its node tree, so comments,
// anchors, and key order survive the rewrite.
func rewriteRevs(data []byte, updates map[string]string) ([]byte, bool, error) {
	if len(updates) == 0 {
		return data, false, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("parse pipeline: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, false, fmt.Errorf("pipeline is not a YAML document")
	}

	changed := false
	root := doc.Content[0]
	repos := mappingValue(root, "repos")
	if repos == nil || repos.Kind != yaml.SequenceNode {
		return nil, false, fmt.Errorf("pipeline has no repos list")
	}

	for _, entry := range repos.Content {
		if entry.Kind != yaml.MappingNode {
			continue
		}
		repoNode := mappingValue(entry, "repo")
		revNode := mappingValue(entry, "rev")
		if repoNode == nil || revNode == nil {
			continue
		}
		newRev, ok := updates[repoNode.Value]
		if !ok || revNode.Value == newRev {
			continue
		}
		revNode.Value = newRev
		// Force plain style so a previously quoted rev stays readable.
		revNode.Tag = "!!str"
		changed = true
	}

	if !changed {
		return data, false, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, false, fmt.Errorf("encode pipeline: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
