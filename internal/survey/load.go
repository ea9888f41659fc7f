package survey

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseAnswers decodes an answer document. The document is a single YAML
// mapping of question key to answer; JSON objects are accepted since JSON is
// valid YAML. Document order is preserved. Scalars are taken verbatim, so
// unquoted Yes/No stay strings.
func ParseAnswers(data []byte) (*Response, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}

	r := NewResponse()
	if doc.Kind == 0 {
		return r, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse answers: line %d: expected a mapping of question to answer", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parse answers: line %d: answers must be plain values", k.Line)
		}
		if err := r.Set(k.Value, v.Value); err != nil {
			return nil, err
		}
	}
	return r, nil
}
