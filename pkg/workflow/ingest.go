package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/yaml"
)

var (
	// ErrInvalidDocument is returned when the input can't be decoded into a JSON/YAML object.
	ErrInvalidDocument = errors.New("invalid workflow document")
	// ErrMissingNodes is returned when the document has no nodes array.
	ErrMissingNodes = errors.New("workflow document has no nodes array")
	// ErrInvalidNode is returned when an entry of the nodes array is not an object.
	ErrInvalidNode = errors.New("invalid node entry")
	// ErrInvalidConnections is returned when connections is present but not an object.
	ErrInvalidConnections = errors.New("workflow connections must be an object")
	// ErrDuplicateNode is returned when two nodes share an id or a name.
	ErrDuplicateNode = errors.New("duplicate node")
)

// IngestResult is the tagged outcome of Ingest. Graph is nil when HasError is set.
type IngestResult struct {
	Graph    *Graph
	HasError bool
	Err      error
}

// Ingest validates and normalizes a workflow document. The input may be JSON or YAML text
// (string, []byte, json.RawMessage), an already decoded map[string]any, or any value that
// encodes to such an object (e.g. Document). Annotation nodes are dropped.
// Ingest never panics on malformed input; failures are reported through the result.
func Ingest(input any) IngestResult {
	root, err := decodeInput(input)
	if err != nil {
		return IngestResult{HasError: true, Err: err}
	}
	g, err := buildGraph(root)
	if err != nil {
		return IngestResult{HasError: true, Err: err}
	}
	return IngestResult{Graph: g}
}

// IsAnnotation reports whether a node type is a pure canvas note.
func IsAnnotation(nodeType string) bool {
	return strings.Contains(strings.ToLower(nodeType), "stickynote")
}

func decodeInput(input any) (map[string]any, error) {
	switch v := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no input", ErrInvalidDocument)
	case string:
		return decodeText([]byte(v))
	case []byte:
		return decodeText(v)
	case json.RawMessage:
		return decodeText(v)
	default:
		// Parsed values are normalised through JSON so typed slices and maps decode like text.
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return decodeText(b)
	}
}

func decodeText(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if !json.Valid(trimmed) {
		converted, err := yaml.YAMLToJSON(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		trimmed = converted
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document root must be an object", ErrInvalidDocument)
	}
	return root, nil
}

func buildGraph(root map[string]any) (*Graph, error) {
	rawNodes, ok := root["nodes"].([]any)
	if !ok {
		return nil, ErrMissingNodes
	}

	g := &Graph{
		Name:  stringValue(root["name"]),
		Tags:  parseTags(root["tags"]),
		Nodes: make([]Node, 0, len(rawNodes)),
	}

	ids := make(map[string]struct{}, len(rawNodes))
	names := make(map[string]struct{}, len(rawNodes))
	for i, item := range rawNodes {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: nodes[%d] is not an object", ErrInvalidNode, i)
		}
		node := parseNode(m, i)
		if IsAnnotation(node.Type) {
			continue
		}
		if _, dup := ids[node.ID]; dup {
			return nil, fmt.Errorf("%w: id %q", ErrDuplicateNode, node.ID)
		}
		if _, dup := names[node.Name]; dup {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateNode, node.Name)
		}
		ids[node.ID] = struct{}{}
		names[node.Name] = struct{}{}
		g.Nodes = append(g.Nodes, node)
	}

	conns, err := parseConnections(root["connections"])
	if err != nil {
		return nil, err
	}
	g.Connections = conns
	return g, nil
}

func parseNode(m map[string]any, index int) Node {
	node := Node{
		ID:         strings.TrimSpace(stringValue(m["id"])),
		Name:       strings.TrimSpace(stringValue(m["name"])),
		Type:       strings.TrimSpace(stringValue(m["type"])),
		Parameters: map[string]any{},
	}
	if node.Name == "" {
		node.Name = node.ID
	}
	if node.ID == "" {
		node.ID = node.Name
	}
	if node.ID == "" {
		node.ID = fmt.Sprintf("node_%d", index+1)
		node.Name = node.ID
	}
	if v, ok := numberValue(m["typeVersion"]); ok {
		node.TypeVersion = v
	}
	if params, ok := m["parameters"].(map[string]any); ok {
		node.Parameters = params
	}
	if pos, ok := m["position"].([]any); ok {
		if len(pos) > 0 {
			node.Position.X, _ = numberValue(pos[0])
		}
		if len(pos) > 1 {
			node.Position.Y, _ = numberValue(pos[1])
		}
	}
	return node
}

func parseConnections(v any) (ConnectionMap, error) {
	out := ConnectionMap{}
	if v == nil {
		return out, nil
	}
	sources, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidConnections
	}
	for source, rawPorts := range sources {
		ports, ok := rawPorts.(map[string]any)
		if !ok {
			continue
		}
		parsed := map[string][][]Target{}
		for kind, rawOutputs := range ports {
			outputs, ok := rawOutputs.([]any)
			if !ok {
				continue
			}
			lists := make([][]Target, len(outputs))
			for i, rawTargets := range outputs {
				targets, ok := rawTargets.([]any)
				if !ok {
					continue
				}
				for _, rt := range targets {
					tm, ok := rt.(map[string]any)
					if !ok {
						continue
					}
					name := stringValue(tm["node"])
					if name == "" {
						continue
					}
					idx, _ := numberValue(tm["index"])
					lists[i] = append(lists[i], Target{
						Node:  name,
						Type:  stringValue(tm["type"]),
						Index: int(idx),
					})
				}
			}
			parsed[kind] = lists
		}
		out[source] = parsed
	}
	return out, nil
}

// parseTags accepts both plain strings and {name} objects.
func parseTags(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var tags []string
	for _, item := range arr {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				tags = append(tags, s)
			}
		case map[string]any:
			if s := strings.TrimSpace(stringValue(t["name"])); s != "" {
				tags = append(tags, s)
			}
		}
	}
	return tags
}
