package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/HartBrook/toonify/internal/notation"
)

// maxYAMLDepth bounds alias expansion so self-referencing anchors cannot recurse forever.
const maxYAMLDepth = 512

var (
	yamlKeyLine = regexp.MustCompile(`(?m)^\w+:\s*.+`)
	jsonNumber  = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?$`)
)

// YAMLConverter re-encodes YAML as JSON and hands it to the JSON converter,
// so both formats share one output grammar.
type YAMLConverter struct {
	json JSONConverter
}

// Detect reports whether input looks like YAML (a document marker or a key: line) and parses.
func (YAMLConverter) Detect(input string) bool {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "---") && !yamlKeyLine.MatchString(trimmed) {
		return false
	}
	_, err := yamlToJSON(trimmed)
	return err == nil
}

// Convert parses input as YAML and flattens it exactly like the equivalent JSON document.
func (c YAMLConverter) Convert(input string) string {
	doc, err := yamlToJSON(input)
	if err != nil {
		return notation.ErrorLine("YAML", err)
	}
	return c.json.Convert(doc)
}

// yamlToJSON decodes the first YAML document and encodes it as JSON with mapping order intact.
// encoding/json is used for the final encode because the ordered map marshals its
// values through it, and json.Number has to mean the same thing at every level.
func yamlToJSON(input string) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", err
	}

	v, err := yamlValue(&doc, 0)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// yamlValue converts a node into null/bool/number/string/[]any/ordered map values.
func yamlValue(n *yaml.Node, depth int) (any, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("document nested deeper than %d levels", maxYAMLDepth)
	}

	switch n.Kind {
	case 0:
		// Empty input decodes to a zero node.
		return nil, nil

	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0], depth+1)

	case yaml.AliasNode:
		return yamlValue(n.Alias, depth+1)

	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := yamlValue(child, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	case yaml.MappingNode:
		m := orderedmap.New[string, any]()
		if err := mergeMapping(m, n, depth); err != nil {
			return nil, err
		}
		return m, nil

	case yaml.ScalarNode:
		return yamlScalar(n)
	}

	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// mergeMapping copies the entries of mapping n into m, expanding "<<" merge keys.
// Explicit keys win over merged ones regardless of position.
func mergeMapping(m *orderedmap.OrderedMap[string, any], n *yaml.Node, depth int) error {
	var merges []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			merges = append(merges, value)
			continue
		}

		v, err := yamlValue(value, depth+1)
		if err != nil {
			return err
		}
		m.Set(key.Value, v)
	}

	for _, src := range merges {
		if src.Kind == yaml.AliasNode {
			src = src.Alias
		}
		sources := []*yaml.Node{src}
		if src.Kind == yaml.SequenceNode {
			sources = src.Content
		}
		for _, s := range sources {
			if s.Kind == yaml.AliasNode {
				s = s.Alias
			}
			if s.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: merge value must be a mapping", s.Line)
			}
			merged := orderedmap.New[string, any]()
			if err := mergeMapping(merged, s, depth+1); err != nil {
				return err
			}
			for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
				if _, exists := m.Get(pair.Key); !exists {
					m.Set(pair.Key, pair.Value)
				}
			}
		}
	}
	return nil
}

// yamlScalar resolves a scalar by its tag. Timestamps and unknown tags stay strings.
// Numbers already spelled as JSON literals pass through untouched so they render as written.
func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!int", "!!float":
		if jsonNumber.MatchString(n.Value) {
			return json.Number(n.Value), nil
		}
	}

	switch n.ShortTag() {
	case "!!bool", "!!int":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			// JSON has no representation for these.
			return nil, nil
		}
		return f, nil
	default:
		return n.Value, nil
	}
}
